package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"cohost/config"
	"cohost/infras/insight"
	"cohost/infras/otel"
	"cohost/internal/domains/analytics/model"
	"cohost/internal/domains/analytics/model/dto"
	partyModel "cohost/internal/domains/party/model"
	partyRepo "cohost/internal/domains/party/repository"
	"cohost/shared"
	"cohost/shared/cache"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	"cohost/shared/timezone"
)

// CachePrefix groups every analytics cache key so consumers of waitlist
// events can invalidate them wholesale.
const CachePrefix = "analytics"

const (
	cacheSummary  = CachePrefix + ":summary"
	cacheDaily    = CachePrefix + ":daily"
	cacheRooms    = CachePrefix + ":rooms"
	cacheInsights = CachePrefix + ":insights"
)

const insightSystemPrompt = "You are an analyst for a restaurant front-of-house team. " +
	"Given waitlist metrics, write at most three short observations a host could act on tonight. " +
	"Plain sentences, no markdown."

type Analytics interface {
	Summary(ctx context.Context, days int) (dto.SummaryResponse, error)
	Daily(ctx context.Context, days int) (dto.DailyResponse, error)
	Rooms(ctx context.Context, days int) (dto.RoomsResponse, error)
	Insights(ctx context.Context, days int) (dto.InsightsResponse, error)
}

type serviceImpl struct {
	partyRepo partyRepo.Party
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	generator insight.Generator
}

func New(partyRepo partyRepo.Party, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, generator insight.Generator) Analytics {
	return &serviceImpl{
		partyRepo: partyRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		generator: generator,
	}
}

func (s *serviceImpl) Summary(ctx context.Context, days int) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheSummary, user, strconv.Itoa(days))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for analytics summary")

		return res, nil
	}

	parties, err := s.loadWindow(ctx, user, days)
	if err != nil {
		return res, err
	}

	res.FromSummary(days, model.Summarize(parties))

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Daily(ctx context.Context, days int) (res dto.DailyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Daily")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheDaily, user, strconv.Itoa(days))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for daily analytics")

		return res, nil
	}

	parties, err := s.loadWindow(ctx, user, days)
	if err != nil {
		return res, err
	}

	res.FromBuckets(days, model.DailyBreakdown(parties))

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Rooms(ctx context.Context, days int) (res dto.RoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rooms")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheRooms, user, strconv.Itoa(days))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room analytics")

		return res, nil
	}

	parties, err := s.loadWindow(ctx, user, days)
	if err != nil {
		return res, err
	}

	res.FromBuckets(days, model.RoomBreakdown(parties))

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

// Insights narrates the summary window. When no generator is configured, or
// the call fails, a deterministic fallback built from the metrics is served
// instead so the endpoint always answers.
func (s *serviceImpl) Insights(ctx context.Context, days int) (res dto.InsightsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Insights")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheInsights, user, strconv.Itoa(days))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for insights")

		return res, nil
	}

	parties, err := s.loadWindow(ctx, user, days)
	if err != nil {
		return res, err
	}

	summary := model.Summarize(parties)

	res.Days = days
	res.Insights = fallbackInsights(days, summary)

	if s.generator.Enabled() {
		generated, genErr := s.generator.Generate(ctx, insightSystemPrompt, insightPrompt(days, summary))
		if genErr != nil {
			log.Warn().Err(genErr).Msg("insight generation failed, serving fallback")
		} else {
			res.Generated = true
			res.Insights = generated
		}
	}

	s.saveToCache(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) loadWindow(ctx context.Context, user string, days int) ([]partyModel.Party, error) {
	since := timezone.Now().AddDate(0, 0, -days)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    partyModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    partyModel.TableName,
			},
			gDto.Filter{
				Field:    partyModel.FieldAddedAt,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    since,
				Table:    partyModel.TableName,
			},
		},
	}

	params := gDto.QueryParams{
		SortBy:  partyModel.TableName + "." + partyModel.FieldAddedAt,
		SortDir: gDto.SortDirAsc,
	}

	parties, err := s.partyRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to load parties for analytics")

		return nil, fmt.Errorf("failed to load parties for analytics: %w", err)
	}

	return parties, nil
}

func (s *serviceImpl) saveToCache(ctx context.Context, cacheKey string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save analytics to cache")
		}
	}()
}

// insightPrompt flattens the summary into the prompt sent to the generator.
func insightPrompt(days int, summary model.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Window: last %d days.\n", days)
	fmt.Fprintf(&b, "Parties: %d, guests: %d, average party size: %.1f.\n", summary.TotalParties, summary.TotalGuests, summary.AvgPartySize)
	fmt.Fprintf(&b, "Average wait: %.1f minutes.\n", summary.AvgWaitMinutes)
	fmt.Fprintf(&b, "Waiting: %d, seated: %d, completed: %d, cancelled: %d.\n", summary.WaitingCount, summary.SeatedCount, summary.CompletedCount, summary.CancelledCount)

	if summary.PeakHour != nil {
		fmt.Fprintf(&b, "Peak hour: %02d:00 with %d guests over %d parties.\n", summary.PeakHour.Hour, summary.PeakHour.Guests, summary.PeakHour.Parties)
	}

	return b.String()
}

func fallbackInsights(days int, summary model.Summary) string {
	if summary.TotalParties == 0 {
		return fmt.Sprintf("No parties recorded in the last %d days.", days)
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Served %d parties (%d guests) over the last %d days, averaging %.1f guests per party.", summary.TotalParties, summary.TotalGuests, days, summary.AvgPartySize)

	if summary.AvgWaitMinutes > 0 {
		fmt.Fprintf(&b, " Average wait to seat was %.0f minutes.", summary.AvgWaitMinutes)
	}

	if summary.PeakHour != nil {
		fmt.Fprintf(&b, " Busiest hour was %02d:00 with %d guests.", summary.PeakHour.Hour, summary.PeakHour.Guests)
	}

	if summary.CancelledCount > 0 {
		fmt.Fprintf(&b, " %d parties cancelled before seating.", summary.CancelledCount)
	}

	return b.String()
}
