package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"cohost/config"
	"cohost/internal/handlers/analytics"
	"cohost/internal/handlers/auth"
	"cohost/internal/handlers/room"
	"cohost/internal/handlers/waitlist"
	"cohost/transport/http/middleware"
	"cohost/transport/http/response"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Room      room.Handler
	Waitlist  waitlist.Handler
	Analytics analytics.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.Auth
	Config         *config.Config
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authMiddleware middleware.Auth, cfg *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
		Config:         cfg,
	}
}

func (r *Router) SetupRoutes(router chi.Router) {
	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   r.Config.App.CORS.AllowedOrigins,
			AllowedMethods:   r.Config.App.CORS.AllowedMethods,
			AllowedHeaders:   r.Config.App.CORS.AllowedHeaders,
			AllowCredentials: r.Config.App.CORS.AllowCredentials,
			MaxAge:           r.Config.App.CORS.MaxAgeSeconds,
		}))
	}

	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		response.WithMessage(w, http.StatusOK, "OK")
	})

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthMiddleware.Auth)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Waitlist.Router(routerGroup)
		r.DomainHandlers.Analytics.Router(routerGroup)
	})
}
