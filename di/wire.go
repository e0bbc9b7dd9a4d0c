//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"cohost/config"
	"cohost/infras/insight"
	"cohost/infras/jwt"
	"cohost/infras/kafka"
	"cohost/infras/otel"
	"cohost/infras/postgres"
	"cohost/infras/redis"
	"cohost/infras/s3"
	"cohost/internal/events"
	"cohost/permissions"
	"cohost/shared/cache"
	"cohost/transport/http"
	"cohost/transport/http/middleware"
	"cohost/transport/http/router"

	analyticsService "cohost/internal/domains/analytics/service"
	authService "cohost/internal/domains/auth/service"
	partyRepository "cohost/internal/domains/party/repository"
	partyService "cohost/internal/domains/party/service"
	roomRepository "cohost/internal/domains/room/repository"
	roomService "cohost/internal/domains/room/service"
	userRepository "cohost/internal/domains/user/repository"

	analyticsHandler "cohost/internal/handlers/analytics"
	authHandler "cohost/internal/handlers/auth"
	roomHandler "cohost/internal/handlers/room"
	waitlistHandler "cohost/internal/handlers/waitlist"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	insight.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var waitlistDomain = wire.NewSet(
	partyRepository.New,
	partyService.New,
)

var analyticsDomain = wire.NewSet(
	analyticsService.New,
)

var domains = wire.NewSet(
	authDomain,
	roomDomain,
	waitlistDomain,
	analyticsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	waitlistHandler.New,
	analyticsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

func InitializeWaitlistConsumer() *events.WaitlistConsumer {
	wire.Build(
		configurations,
		infrastructures,
		sharedHelpers,
		events.NewWaitlistConsumer,
	)

	return &events.WaitlistConsumer{}
}
