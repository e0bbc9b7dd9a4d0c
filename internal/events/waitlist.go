package events

import (
	"context"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"cohost/config"
	"cohost/infras/kafka"
	"cohost/infras/otel"
	analyticsService "cohost/internal/domains/analytics/service"
	partyDto "cohost/internal/domains/party/model/dto"
	"cohost/shared"
	"cohost/shared/cache"
	"cohost/shared/constant"
)

// WaitlistConsumer reads party lifecycle events and drops the analytics
// caches they stale out. Aggregates are recomputed lazily on the next read.
type WaitlistConsumer struct {
	kafka kafka.Client
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func NewWaitlistConsumer(kafkaClient kafka.Client, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) *WaitlistConsumer {
	return &WaitlistConsumer{
		kafka: kafkaClient,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

// Run blocks consuming the waitlist events topic until the context is
// cancelled. With no topic configured it returns immediately.
func (c *WaitlistConsumer) Run(ctx context.Context) {
	topic := c.cfg.Kafka.Topics.WaitlistEvents
	if topic == constant.Empty {
		log.Info().Msg("Waitlist events topic not configured, consumer disabled")

		return
	}

	log.Info().Str("topic", topic).Msg("Starting waitlist events consumer")

	c.kafka.Consume(ctx, c.cfg.Kafka.ConsumerGroup, topic, c.handle)
}

func (c *WaitlistConsumer) handle(msg kafkaGo.Message) {
	ctx, scope := c.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".waitlist")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[partyDto.PartyEvent](msg)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode waitlist event")

		return
	}

	event, ok := decoded.Value.(partyDto.PartyEvent)
	if !ok {
		log.Error().Msg("unexpected waitlist event payload")

		return
	}

	log.Info().
		Str("party_id", event.PartyID).
		Str("state", event.State).
		Msg("waitlist event received, invalidating analytics caches")

	shared.InvalidateCaches(ctx, c.cache, analyticsService.CachePrefix)
}
