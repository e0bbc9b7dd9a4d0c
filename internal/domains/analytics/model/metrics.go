package model

import (
	"sort"
	"time"

	partyModel "cohost/internal/domains/party/model"
	"cohost/shared/constant"
	"cohost/shared/timezone"
)

// Wait samples outside [0, 240) minutes are treated as data anomalies and
// excluded from averages. The party still counts toward totals.
const maxWaitSampleMinutes = 240

type HourlyBucket struct {
	Hour    int `json:"hour"`
	Parties int `json:"parties"`
	Guests  int `json:"guests"`
}

type Summary struct {
	TotalParties   int            `json:"total_parties"`
	TotalGuests    int            `json:"total_guests"`
	AvgPartySize   float64        `json:"avg_party_size"`
	AvgWaitMinutes float64        `json:"avg_wait_minutes"`
	WaitingCount   int            `json:"waiting_count"`
	SeatedCount    int            `json:"seated_count"`
	CompletedCount int            `json:"completed_count"`
	CancelledCount int            `json:"cancelled_count"`
	Hourly         []HourlyBucket `json:"hourly"`
	PeakHour       *HourlyBucket  `json:"peak_hour"`
}

type DailyBucket struct {
	Date           string  `json:"date"`
	Parties        int     `json:"parties"`
	Guests         int     `json:"guests"`
	Cancelled      int     `json:"cancelled"`
	Completed      int     `json:"completed"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes"`
}

type RoomBucket struct {
	Room           string  `json:"room"`
	Parties        int     `json:"parties"`
	Guests         int     `json:"guests"`
	Cancelled      int     `json:"cancelled"`
	Completed      int     `json:"completed"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes"`
	AvgPartySize   float64 `json:"avg_party_size"`
}

// waitSample returns the party's wait in fractional minutes and whether it
// passes the inclusion rule.
func waitSample(party partyModel.Party) (float64, bool) {
	if party.AddedAt.IsZero() || party.SeatedAt == nil {
		return 0, false
	}

	minutes := party.SeatedAt.Sub(party.AddedAt).Minutes()
	if minutes < 0 || minutes >= maxWaitSampleMinutes {
		return 0, false
	}

	return minutes, true
}

// bucketTime is the timestamp a party is grouped by: addedAt, falling back
// to the record creation time, in the application timezone.
func bucketTime(party partyModel.Party) time.Time {
	at := party.AddedAt
	if at.IsZero() {
		at = party.CreatedAt
	}

	return timezone.ToAppTime(at)
}

func mean(sum float64, count int) float64 {
	if count == 0 {
		return 0
	}

	return sum / float64(count)
}

// Summarize computes aggregate metrics over the given parties. Averages
// guard division by zero by returning 0, never NaN.
func Summarize(parties []partyModel.Party) Summary {
	summary := Summary{Hourly: []HourlyBucket{}}
	byHour := map[int]*HourlyBucket{}

	var waitSum float64
	var waitCount int

	for _, party := range parties {
		summary.TotalParties++
		summary.TotalGuests += party.Size

		switch party.State {
		case partyModel.StateWaiting:
			summary.WaitingCount++
		case partyModel.StateSeated:
			summary.SeatedCount++
		case partyModel.StateCompleted:
			summary.CompletedCount++
		case partyModel.StateCancelled:
			summary.CancelledCount++
		}

		if minutes, ok := waitSample(party); ok {
			waitSum += minutes
			waitCount++
		}

		hour := bucketTime(party).Hour()
		bucket, ok := byHour[hour]
		if !ok {
			bucket = &HourlyBucket{Hour: hour}
			byHour[hour] = bucket
		}

		bucket.Parties++
		bucket.Guests += party.Size
	}

	summary.AvgPartySize = mean(float64(summary.TotalGuests), summary.TotalParties)
	summary.AvgWaitMinutes = mean(waitSum, waitCount)

	for _, bucket := range byHour {
		summary.Hourly = append(summary.Hourly, *bucket)
	}

	sort.Slice(summary.Hourly, func(i, j int) bool {
		return summary.Hourly[i].Hour < summary.Hourly[j].Hour
	})

	// Ties break toward the earliest hour after the ascending sort.
	for i := range summary.Hourly {
		if summary.PeakHour == nil || summary.Hourly[i].Guests > summary.PeakHour.Guests {
			peak := summary.Hourly[i]
			summary.PeakHour = &peak
		}
	}

	return summary
}

// DailyBreakdown groups parties by the calendar date of their addedAt,
// sorted ascending by date.
func DailyBreakdown(parties []partyModel.Party) []DailyBucket {
	type accumulator struct {
		bucket    DailyBucket
		waitSum   float64
		waitCount int
	}

	byDate := map[string]*accumulator{}

	for _, party := range parties {
		date := bucketTime(party).Format(constant.DateOnlyFormat)

		acc, ok := byDate[date]
		if !ok {
			acc = &accumulator{bucket: DailyBucket{Date: date}}
			byDate[date] = acc
		}

		acc.bucket.Parties++
		acc.bucket.Guests += party.Size

		switch party.State {
		case partyModel.StateCancelled:
			acc.bucket.Cancelled++
		case partyModel.StateCompleted:
			acc.bucket.Completed++
		}

		if minutes, ok := waitSample(party); ok {
			acc.waitSum += minutes
			acc.waitCount++
		}
	}

	buckets := make([]DailyBucket, 0, len(byDate))

	for _, acc := range byDate {
		acc.bucket.AvgWaitMinutes = mean(acc.waitSum, acc.waitCount)
		buckets = append(buckets, acc.bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Date < buckets[j].Date
	})

	return buckets
}

// RoomBreakdown groups parties by room key, sorted descending by guests.
func RoomBreakdown(parties []partyModel.Party) []RoomBucket {
	type accumulator struct {
		bucket    RoomBucket
		waitSum   float64
		waitCount int
	}

	byRoom := map[string]*accumulator{}

	for _, party := range parties {
		acc, ok := byRoom[party.RoomKey]
		if !ok {
			acc = &accumulator{bucket: RoomBucket{Room: party.RoomKey}}
			byRoom[party.RoomKey] = acc
		}

		acc.bucket.Parties++
		acc.bucket.Guests += party.Size

		switch party.State {
		case partyModel.StateCancelled:
			acc.bucket.Cancelled++
		case partyModel.StateCompleted:
			acc.bucket.Completed++
		}

		if minutes, ok := waitSample(party); ok {
			acc.waitSum += minutes
			acc.waitCount++
		}
	}

	buckets := make([]RoomBucket, 0, len(byRoom))

	for _, acc := range byRoom {
		acc.bucket.AvgWaitMinutes = mean(acc.waitSum, acc.waitCount)
		acc.bucket.AvgPartySize = mean(float64(acc.bucket.Guests), acc.bucket.Parties)
		buckets = append(buckets, acc.bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Guests != buckets[j].Guests {
			return buckets[i].Guests > buckets[j].Guests
		}

		return buckets[i].Room < buckets[j].Room
	})

	return buckets
}
