package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cohost/infras/otel"
	"cohost/internal/domains/analytics/service"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	"cohost/transport/http/response"
)

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/daily", handler.GetDaily)
		routerGroup.Get("/rooms", handler.GetRooms)
		routerGroup.Get("/insights", handler.GetInsights)
	})
}

// GetSummary retrieves aggregate waitlist metrics.
// @Summary Get waitlist summary metrics
// @Description Retrieve totals, averages, state counts, and hourly traffic for the window.
// @Tags Analytics
// @Produce json
// @Param days query integer false "Window in days"
// @Success 200 {object} response.Data[dto.SummaryResponse] "Summary metrics"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx, gDto.DaysFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get analytics summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Analytics summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetDaily retrieves per-day waitlist metrics.
// @Summary Get daily waitlist metrics
// @Description Retrieve per-day party counts and averages for the window.
// @Tags Analytics
// @Produce json
// @Param days query integer false "Window in days"
// @Success 200 {object} response.Data[dto.DailyResponse] "Daily metrics"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/daily [get]
// @Security BearerAuth
func (handler *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDaily")
	defer scope.End()

	daily, err := handler.service.Daily(ctx, gDto.DaysFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get daily analytics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Daily analytics retrieved successfully")

	response.WithJSON(w, http.StatusOK, daily)
}

// GetRooms retrieves per-room waitlist metrics.
// @Summary Get room waitlist metrics
// @Description Retrieve per-room party counts and averages for the window.
// @Tags Analytics
// @Produce json
// @Param days query integer false "Window in days"
// @Success 200 {object} response.Data[dto.RoomsResponse] "Room metrics"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/rooms [get]
// @Security BearerAuth
func (handler *Handler) GetRooms(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	rooms, err := handler.service.Rooms(ctx, gDto.DaysFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get room analytics")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Room analytics retrieved successfully")

	response.WithJSON(w, http.StatusOK, rooms)
}

// GetInsights retrieves a narrative reading of the window's metrics.
// @Summary Get waitlist insights
// @Description Retrieve short narrative observations derived from the window's metrics.
// @Tags Analytics
// @Produce json
// @Param days query integer false "Window in days"
// @Success 200 {object} response.Data[dto.InsightsResponse] "Insights"
// @Failure 500 {object} response.Error
// @Router /v1/analytics/insights [get]
// @Security BearerAuth
func (handler *Handler) GetInsights(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInsights")
	defer scope.End()

	insights, err := handler.service.Insights(ctx, gDto.DaysFromRequest(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get insights")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Insights retrieved successfully")

	response.WithJSON(w, http.StatusOK, insights)
}
