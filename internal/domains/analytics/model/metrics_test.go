package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cohost/internal/domains/analytics/model"
	partyModel "cohost/internal/domains/party/model"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func party(state string, size int, addedAt time.Time, wait time.Duration) partyModel.Party {
	p := partyModel.Party{
		State:   state,
		Size:    size,
		RoomKey: "main",
		AddedAt: addedAt,
	}

	if state == partyModel.StateSeated || state == partyModel.StateCompleted {
		p.SeatedAt = timePtr(addedAt.Add(wait))
	}

	return p
}

func TestSummarize(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	t.Run("empty input yields zeroes, never NaN", func(t *testing.T) {
		summary := model.Summarize(nil)

		assert.Equal(t, 0, summary.TotalParties)
		assert.Equal(t, float64(0), summary.AvgPartySize)
		assert.Equal(t, float64(0), summary.AvgWaitMinutes)
		assert.Empty(t, summary.Hourly)
		assert.Nil(t, summary.PeakHour)
	})

	t.Run("aggregates states, waits and hours", func(t *testing.T) {
		parties := []partyModel.Party{
			party(partyModel.StateCompleted, 4, base, 10*time.Minute),
			party(partyModel.StateSeated, 2, base.Add(30*time.Minute), 20*time.Minute),
			party(partyModel.StateWaiting, 3, base.Add(time.Hour), 0),
			party(partyModel.StateCancelled, 5, base.Add(time.Hour), 0),
		}

		summary := model.Summarize(parties)

		assert.Equal(t, 4, summary.TotalParties)
		assert.Equal(t, 14, summary.TotalGuests)
		assert.Equal(t, 1, summary.WaitingCount)
		assert.Equal(t, 1, summary.SeatedCount)
		assert.Equal(t, 1, summary.CompletedCount)
		assert.Equal(t, 1, summary.CancelledCount)
		assert.InDelta(t, 3.5, summary.AvgPartySize, 1e-9)
		assert.InDelta(t, 15, summary.AvgWaitMinutes, 1e-9)

		// Only hours with traffic appear, ascending.
		if assert.Len(t, summary.Hourly, 2) {
			assert.Equal(t, 18, summary.Hourly[0].Hour)
			assert.Equal(t, 6, summary.Hourly[0].Guests)
			assert.Equal(t, 19, summary.Hourly[1].Hour)
			assert.Equal(t, 8, summary.Hourly[1].Guests)
		}

		if assert.NotNil(t, summary.PeakHour) {
			assert.Equal(t, 19, summary.PeakHour.Hour)
		}
	})

	t.Run("wait samples outside the window are excluded", func(t *testing.T) {
		parties := []partyModel.Party{
			party(partyModel.StateCompleted, 2, base, 10*time.Minute),
			party(partyModel.StateCompleted, 2, base, 240*time.Minute),
			party(partyModel.StateCompleted, 2, base, -time.Minute),
		}

		summary := model.Summarize(parties)

		assert.InDelta(t, 10, summary.AvgWaitMinutes, 1e-9)
	})

	t.Run("fractional waits are not rounded", func(t *testing.T) {
		parties := []partyModel.Party{
			party(partyModel.StateCompleted, 2, base, 90*time.Second),
		}

		summary := model.Summarize(parties)

		assert.InDelta(t, 1.5, summary.AvgWaitMinutes, 1e-9)
	})

	t.Run("peak hour ties break toward the earliest hour", func(t *testing.T) {
		parties := []partyModel.Party{
			party(partyModel.StateWaiting, 4, base.Add(2*time.Hour), 0),
			party(partyModel.StateWaiting, 4, base, 0),
		}

		summary := model.Summarize(parties)

		if assert.NotNil(t, summary.PeakHour) {
			assert.Equal(t, 18, summary.PeakHour.Hour)
		}
	})
}

func TestDailyBreakdown(t *testing.T) {
	day1 := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	parties := []partyModel.Party{
		party(partyModel.StateCompleted, 4, day2, 10*time.Minute),
		party(partyModel.StateCancelled, 2, day1, 0),
		party(partyModel.StateCompleted, 3, day1, 30*time.Minute),
	}

	buckets := model.DailyBreakdown(parties)

	if assert.Len(t, buckets, 2) {
		assert.Equal(t, "2026-03-14", buckets[0].Date)
		assert.Equal(t, 2, buckets[0].Parties)
		assert.Equal(t, 1, buckets[0].Cancelled)
		assert.Equal(t, 1, buckets[0].Completed)
		assert.InDelta(t, 30, buckets[0].AvgWaitMinutes, 1e-9)

		assert.Equal(t, "2026-03-15", buckets[1].Date)
		assert.Equal(t, 4, buckets[1].Guests)
	}
}

func TestRoomBreakdown(t *testing.T) {
	base := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	patio := party(partyModel.StateCompleted, 2, base, 10*time.Minute)
	patio.RoomKey = "patio"

	parties := []partyModel.Party{
		patio,
		party(partyModel.StateCompleted, 4, base, 20*time.Minute),
		party(partyModel.StateCancelled, 3, base, 0),
	}

	buckets := model.RoomBreakdown(parties)

	if assert.Len(t, buckets, 2) {
		// Most guests first.
		assert.Equal(t, "main", buckets[0].Room)
		assert.Equal(t, 7, buckets[0].Guests)
		assert.Equal(t, 2, buckets[0].Parties)
		assert.InDelta(t, 3.5, buckets[0].AvgPartySize, 1e-9)
		assert.InDelta(t, 20, buckets[0].AvgWaitMinutes, 1e-9)

		assert.Equal(t, "patio", buckets[1].Room)
	}
}
