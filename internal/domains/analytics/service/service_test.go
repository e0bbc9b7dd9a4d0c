package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cohost/config"
	insightMocks "cohost/infras/insight/mocks"
	"cohost/infras/otel/mocks"
	"cohost/internal/domains/analytics/service"
	partyMocks "cohost/internal/domains/party/mocks"
	partyModel "cohost/internal/domains/party/model"
	cacheMocks "cohost/shared/cache/mocks"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
)

type serviceMocks struct {
	parties   *partyMocks.MockParty
	cache     *cacheMocks.MockRedisCache
	generator *insightMocks.MockGenerator
}

func newService(t *testing.T) (service.Analytics, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		parties:   partyMocks.NewMockParty(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		generator: insightMocks.NewMockGenerator(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	m.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.parties, cfg, m.cache, mocks.NewOtel(), m.generator)

	return svc, m
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "account-1")
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func fixtureParties() []partyModel.Party {
	added := time.Now().Add(-2 * time.Hour)

	return []partyModel.Party{
		{
			UserID:   "account-1",
			Size:     4,
			RoomKey:  "main",
			State:    partyModel.StateCompleted,
			AddedAt:  added,
			SeatedAt: timePtr(added.Add(15 * time.Minute)),
		},
		{
			UserID:  "account-1",
			Size:    2,
			RoomKey: "patio",
			State:   partyModel.StateCancelled,
			AddedAt: added.Add(30 * time.Minute),
		},
	}
}

func TestAnalyticsService_Summary(t *testing.T) {
	svc, m := newService(t)

	m.parties.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]partyModel.Party, error) {
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)
			assert.Len(t, filter.Filters, 2)

			return fixtureParties(), nil
		})

	res, err := svc.Summary(testContext(), 7)

	assert.NoError(t, err)
	assert.Equal(t, 7, res.Days)
	assert.Equal(t, 2, res.TotalParties)
	assert.Equal(t, 6, res.TotalGuests)
	assert.Equal(t, 1, res.CompletedCount)
	assert.Equal(t, 1, res.CancelledCount)
	assert.InDelta(t, 15, res.AvgWaitMinutes, 1e-9)
}

func TestAnalyticsService_Summary_RepositoryError(t *testing.T) {
	svc, m := newService(t)

	m.parties.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("database error"))

	_, err := svc.Summary(testContext(), 7)

	assert.Error(t, err)
}

func TestAnalyticsService_Rooms(t *testing.T) {
	svc, m := newService(t)

	m.parties.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fixtureParties(), nil)

	res, err := svc.Rooms(testContext(), 30)

	assert.NoError(t, err)

	if assert.Len(t, res.Rooms, 2) {
		assert.Equal(t, "main", res.Rooms[0].Room)
		assert.Equal(t, "patio", res.Rooms[1].Room)
	}
}

func TestAnalyticsService_Daily(t *testing.T) {
	svc, m := newService(t)

	m.parties.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(fixtureParties(), nil)

	res, err := svc.Daily(testContext(), 30)

	assert.NoError(t, err)
	assert.NotEmpty(t, res.Buckets)
}

func TestAnalyticsService_Insights(t *testing.T) {
	t.Run("generator disabled serves the fallback", func(t *testing.T) {
		svc, m := newService(t)

		m.parties.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fixtureParties(), nil)
		m.generator.EXPECT().Enabled().Return(false)

		res, err := svc.Insights(testContext(), 7)

		assert.NoError(t, err)
		assert.False(t, res.Generated)
		assert.Contains(t, res.Insights, "2 parties")
	})

	t.Run("generator output wins when available", func(t *testing.T) {
		svc, m := newService(t)

		m.parties.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fixtureParties(), nil)
		m.generator.EXPECT().Enabled().Return(true)
		m.generator.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("Seat large parties earlier.", nil)

		res, err := svc.Insights(testContext(), 7)

		assert.NoError(t, err)
		assert.True(t, res.Generated)
		assert.Equal(t, "Seat large parties earlier.", res.Insights)
	})

	t.Run("generator failure falls back instead of erroring", func(t *testing.T) {
		svc, m := newService(t)

		m.parties.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(fixtureParties(), nil)
		m.generator.EXPECT().Enabled().Return(true)
		m.generator.EXPECT().
			Generate(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", errors.New("endpoint unavailable"))

		res, err := svc.Insights(testContext(), 7)

		assert.NoError(t, err)
		assert.False(t, res.Generated)
		assert.NotEmpty(t, res.Insights)
	})
}
