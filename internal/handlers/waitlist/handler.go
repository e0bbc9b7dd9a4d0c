package waitlist

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"cohost/infras/otel"
	"cohost/internal/domains/party/model/dto"
	"cohost/internal/domains/party/service"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	"cohost/shared/validator"
	"cohost/transport/http/response"
)

type Handler struct {
	service service.Party
	otel    otel.Otel
}

func New(service service.Party, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/waitlist", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateParty)
		routerGroup.Get("/current", handler.GetCurrentParties)
		routerGroup.Get("/history", handler.GetPartyHistory)
		routerGroup.Delete("/history", handler.PurgeHistory)
		routerGroup.Get("/{id}", handler.GetPartyByID)
		routerGroup.Patch("/{id}", handler.UpdateParty)
		routerGroup.Put("/{id}/state", handler.TransitionParty)
	})
}

// CreateParty adds a new party to the waitlist.
// @Summary Add a party to the waitlist
// @Description Add a new party; it starts in the waiting state.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param request body dto.CreatePartyRequest true "Create Party Request"
// @Success 201 {object} response.Data[dto.PartyResponse] "Party added successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist [post]
// @Security BearerAuth
func (handler *Handler) CreateParty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateParty")
	defer scope.End()

	req := dto.CreatePartyRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create party")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party added successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetCurrentParties lists the live waitlist board.
// @Summary Get the current waitlist
// @Description Retrieve waiting and seated parties in arrival order.
// @Tags Waitlist
// @Produce json
// @Success 200 {object} response.Data[dto.GetPartiesResponse] "Current parties"
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/current [get]
// @Security BearerAuth
func (handler *Handler) GetCurrentParties(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCurrentParties")
	defer scope.End()

	parties, err := handler.service.GetCurrent(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get current parties")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Current parties retrieved successfully")

	response.WithJSON(w, http.StatusOK, parties)
}

// GetPartyHistory lists completed and cancelled parties.
// @Summary Get waitlist history
// @Description Retrieve completed and cancelled parties from the recent window.
// @Tags Waitlist
// @Produce json
// @Param days query integer false "Window in days"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetPartiesResponse] "Party history"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/history [get]
// @Security BearerAuth
func (handler *Handler) GetPartyHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartyHistory")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	days := gDto.DaysFromRequest(r)

	parties, err := handler.service.GetHistory(ctx, days, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get party history")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Party history retrieved successfully")

	response.WithJSON(w, http.StatusOK, parties)
}

// PurgeHistory deletes the account's waitlist history.
// @Summary Purge waitlist history
// @Description Delete all completed and cancelled parties after re-verifying the account password.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param request body dto.PurgeHistoryRequest true "Purge History Request"
// @Success 200 {object} response.Data[dto.PurgeHistoryResponse] "History purged successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/history [delete]
// @Security BearerAuth
func (handler *Handler) PurgeHistory(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PurgeHistory")
	defer scope.End()

	req := dto.PurgeHistoryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.PurgeHistory(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to purge party history")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party history purged successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetPartyByID retrieves a party by its ID.
// @Summary Get a party by ID
// @Description Retrieve a waitlist party by its unique identifier.
// @Tags Waitlist
// @Produce json
// @Param id path string true "Party ID"
// @Success 200 {object} response.Data[dto.PartyResponse] "Party details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPartyByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPartyByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	party, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get party by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Party retrieved successfully")

	response.WithJSON(w, http.StatusOK, party)
}

// UpdateParty patches a party's details.
// @Summary Update a party by ID
// @Description Update a party's display details. State changes go through the state endpoint.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param request body dto.UpdatePartyRequest true "Update Party Request"
// @Success 200 {object} response.Message "Party updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateParty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateParty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePartyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateDetails(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update party")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Party updated successfully")
}

// TransitionParty moves a party to a new lifecycle state.
// @Summary Change a party's state
// @Description Move a party between waiting, seated, completed, and cancelled. Seating can auto-assign a table.
// @Tags Waitlist
// @Accept json
// @Produce json
// @Param id path string true "Party ID"
// @Param request body dto.TransitionPartyRequest true "Transition Party Request"
// @Success 200 {object} response.Data[dto.PartyResponse] "Party transitioned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/waitlist/{id}/state [put]
// @Security BearerAuth
func (handler *Handler) TransitionParty(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransitionParty")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.TransitionPartyRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Transition(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transition party")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Party transitioned successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
