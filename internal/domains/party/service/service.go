package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"cohost/config"
	"cohost/infras/kafka"
	"cohost/infras/otel"
	authService "cohost/internal/domains/auth/service"
	"cohost/internal/domains/party/model"
	"cohost/internal/domains/party/model/dto"
	"cohost/internal/domains/party/repository"
	roomModel "cohost/internal/domains/room/model"
	roomRepo "cohost/internal/domains/room/repository"
	roomService "cohost/internal/domains/room/service"
	"cohost/shared"
	"cohost/shared/cache"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	"cohost/shared/failure"
	"cohost/shared/timezone"
)

const (
	cacheGetParty     = "party:get"
	cacheCurrentParty = "party:current"
	cacheHistoryParty = "party:history"
)

type Party interface {
	Create(ctx context.Context, req dto.CreatePartyRequest) (dto.PartyResponse, error)
	Get(ctx context.Context, id string) (dto.PartyResponse, error)
	GetCurrent(ctx context.Context) (dto.GetPartiesResponse, error)
	GetHistory(ctx context.Context, days int, params gDto.QueryParams) (dto.GetPartiesResponse, error)
	UpdateDetails(ctx context.Context, req dto.UpdatePartyRequest, id string) error
	Transition(ctx context.Context, req dto.TransitionPartyRequest, id string) (dto.PartyResponse, error)
	PurgeHistory(ctx context.Context, req dto.PurgeHistoryRequest) (dto.PurgeHistoryResponse, error)
}

type serviceImpl struct {
	repo     repository.Party
	roomRepo roomRepo.Room
	auth     authService.Auth
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	kafka    kafka.Client
}

func New(repo repository.Party, roomRepo roomRepo.Room, auth authService.Auth, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client) Party {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		auth:     auth,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		kafka:    kafkaClient,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePartyRequest) (res dto.PartyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	party := req.ToModel(user)

	if err = s.repo.Insert(ctx, party); err != nil {
		log.Error().Err(err).Msg("failed to create party")

		return res, fmt.Errorf("failed to create party: %w", err)
	}

	s.publishEvent(ctx, party)
	s.invalidateLists(ctx)

	res.FromModel(party)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PartyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheGetParty, user, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for party")

		return res, nil
	}

	party, err := s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	res.FromModel(party)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save party to cache")
		}
	}()

	return res, nil
}

// GetCurrent lists the live board: waiting and seated parties, oldest first.
func (s *serviceImpl) GetCurrent(ctx context.Context) (res dto.GetPartiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetCurrent")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheCurrentParty, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for current parties")

		return res, nil
	}

	filter := filterByUserAndStates(user, model.CurrentStates)
	params := gDto.QueryParams{
		SortBy:  model.TableName + "." + model.FieldAddedAt,
		SortDir: gDto.SortDirAsc,
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current parties")

		return res, fmt.Errorf("failed to get current parties: %w", err)
	}

	res.FromModels(models, len(models), 0)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save current parties to cache")
		}
	}()

	return res, nil
}

// GetHistory lists completed and cancelled parties added within the last
// given days, newest first.
func (s *serviceImpl) GetHistory(ctx context.Context, days int, params gDto.QueryParams) (res dto.GetPartiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	since := timezone.Now().AddDate(0, 0, -days)
	filter := filterByUserAndStates(user, model.HistoryStates)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldAddedAt,
		Operator: gDto.FilterOperatorGreaterEq,
		Value:    since,
		Table:    model.TableName,
	})

	if params.SortBy == "" {
		params.SortBy = model.TableName + "." + model.FieldAddedAt
		params.SortDir = gDto.SortDirDesc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheHistoryParty, user), params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for party history")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count party history")

		return res, fmt.Errorf("failed to count party history: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get party history")

		return res, fmt.Errorf("failed to get party history: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save party history to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpdateDetails(ctx context.Context, req dto.UpdatePartyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateDetails")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	party, err := s.getOwned(ctx, user, id)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	updatedFields[model.FieldVersion] = party.Version + 1

	updated, err := s.repo.Update(ctx, updatedFields, filterForVersionedWrite(id, user, party.Version))
	if err != nil {
		log.Error().Err(err).Msg("failed to update party details")

		return fmt.Errorf("failed to update party details: %w", err)
	}

	if updated == 0 {
		return failure.Conflict("party was modified concurrently, retry with fresh state")
	}

	s.invalidateParty(ctx, user, id)
	s.invalidateLists(ctx)

	return nil
}

// Transition moves a party to a target lifecycle state. The write is
// conditional on the version observed at read time; a concurrent writer
// winning the race surfaces as a conflict rather than a silent overwrite.
func (s *serviceImpl) Transition(ctx context.Context, req dto.TransitionPartyRequest, id string) (res dto.PartyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if !model.IsValidState(req.State) {
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown party state %q", req.State))
	}

	party, err := s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	prior := party

	extras := model.TransitionExtras{
		TableID:      req.TableID,
		CancelReason: req.CancelReason,
	}

	if req.State == model.StateSeated && req.TableID == nil && req.AutoAssign {
		extras.TableID = s.autoAssign(ctx, user, party)
	}

	updatedFields, err := model.TransitionFields(req.State, extras, timezone.Now())
	if err != nil {
		if errors.Is(err, model.ErrUnknownState) {
			return res, failure.BadRequestFromString(err.Error())
		}

		return res, fmt.Errorf("failed to compute transition: %w", err)
	}

	expectedVersion := party.Version
	if req.Version != nil {
		expectedVersion = *req.Version
	}

	updatedFields[model.FieldVersion] = expectedVersion + 1
	updatedFields[constant.FieldModifiedAt] = timezone.Now()
	updatedFields[constant.FieldModifiedBy] = user

	updated, err := s.repo.Update(ctx, updatedFields, filterForVersionedWrite(id, user, expectedVersion))
	if err != nil {
		log.Error().Err(err).Msg("failed to transition party")

		return res, fmt.Errorf("failed to transition party: %w", err)
	}

	if updated == 0 {
		return res, failure.Conflict("party was modified concurrently, retry with fresh state")
	}

	// A vacated table needs cleaning before it can be offered again.
	if prior.State == model.StateSeated && prior.TableID != nil &&
		(req.State == model.StateCompleted || req.State == model.StateCancelled) {
		s.markTableNotReady(ctx, user, prior.RoomKey, *prior.TableID)
	}

	party, err = s.getOwned(ctx, user, id)
	if err != nil {
		return res, err
	}

	s.publishEvent(ctx, party)
	s.invalidateParty(ctx, user, id)
	s.invalidateLists(ctx)

	res.FromModel(party)

	return res, nil
}

// PurgeHistory bulk-deletes terminal parties after re-verifying the account
// password.
func (s *serviceImpl) PurgeHistory(ctx context.Context, req dto.PurgeHistoryRequest) (res dto.PurgeHistoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PurgeHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.auth.VerifyPassword(ctx, user, req.Password); err != nil {
		return res, err
	}

	purged, err := s.repo.Delete(ctx, filterByUserAndStates(user, model.HistoryStates))
	if err != nil {
		log.Error().Err(err).Msg("failed to purge party history")

		return res, fmt.Errorf("failed to purge party history: %w", err)
	}

	log.Info().Int64("purged", purged).Str("user_id", user).Msg("purged party history")

	s.invalidateLists(ctx)

	res.Purged = purged

	return res, nil
}

// autoAssign picks a table in the party's room using the matching ladder
// over the room's effective table states. A nil result seats the party
// without a table.
func (s *serviceImpl) autoAssign(ctx context.Context, user string, party model.Party) *int {
	room, err := s.roomRepo.Get(ctx, filterRoomByUserAndKey(user, party.RoomKey))
	if err != nil || room.ID == constant.Empty {
		log.Warn().Err(err).Str("room_key", party.RoomKey).Msg("auto-assign skipped, room not found")

		return nil
	}

	current, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filterByUserAndStates(user, []string{model.StateSeated}))
	if err != nil {
		log.Warn().Err(err).Msg("auto-assign skipped, failed to load seated parties")

		return nil
	}

	tables := model.EffectiveTableStates(room.Tables, party.RoomKey, current)

	table := model.AssignTable(party, tables)
	if table == nil {
		return nil
	}

	return &table.ID
}

// markTableNotReady flags a vacated table as needing cleaning. The party
// transition has already committed, so failures here only log.
func (s *serviceImpl) markTableNotReady(ctx context.Context, user, roomKey string, tableID int) {
	room, err := s.roomRepo.Get(ctx, filterRoomByUserAndKey(user, roomKey))
	if err != nil || room.ID == constant.Empty {
		log.Warn().Err(err).Str("room_key", roomKey).Msg("table cleanup skipped, room not found")

		return
	}

	tables := make(roomModel.Tables, len(room.Tables))
	copy(tables, room.Tables)

	changed := false

	for i := range tables {
		if tables[i].ID == tableID && tables[i].State != roomModel.TableStateNotReady {
			tables[i].State = roomModel.TableStateNotReady
			changed = true
		}
	}

	if !changed {
		return
	}

	fields := map[string]any{
		roomModel.FieldTables:    tables,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	filter := shared.FilterOwnedByID(room.ID, user, roomModel.FieldID, roomModel.FieldUserID, roomModel.TableName)

	if _, err := s.roomRepo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Str("room_id", room.ID).Msg("failed to mark table not-ready")

		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, roomService.CachePrefix)
	}()
}

func (s *serviceImpl) getOwned(ctx context.Context, user, id string) (model.Party, error) {
	party, err := s.repo.Get(ctx, shared.FilterOwnedByID(id, user, model.FieldID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get party")

		return party, fmt.Errorf("failed to get party: %w", err)
	}

	if party.ID == constant.Empty {
		return party, failure.NotFound("party not found") // nolint:wrapcheck
	}

	return party, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, party model.Party) {
	topic := s.cfg.Kafka.Topics.WaitlistEvents
	if topic == constant.Empty {
		return
	}

	event := dto.NewPartyEvent(party)

	go func() {
		c := context.WithoutCancel(ctx)

		message := kafka.Message{Key: party.UserID, Value: event}
		if err := s.kafka.SendMessages(c, topic, message); err != nil {
			log.Error().Err(err).Str("party_id", party.ID).Msg("failed to publish party event")
		}
	}()
}

func (s *serviceImpl) invalidateParty(ctx context.Context, user, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetParty, user, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete party cache")
		}
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheCurrentParty)
		shared.InvalidateCaches(c, s.cache, cacheHistoryParty)
	}()
}

func filterByUserAndStates(user string, states []string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldState,
				Operator: gDto.FilterOperatorIn,
				Value:    states,
				Table:    model.TableName,
			},
		},
	}
}

func filterForVersionedWrite(id, user string, version int) gDto.FilterGroup {
	filter := shared.FilterOwnedByID(id, user, model.FieldID, model.FieldUserID, model.TableName)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldVersion,
		Operator: gDto.FilterOperatorEq,
		Value:    version,
		Table:    model.TableName,
	})

	return filter
}

func filterRoomByUserAndKey(user, key string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    roomModel.TableName,
			},
			gDto.Filter{
				Field:    roomModel.FieldKey,
				Operator: gDto.FilterOperatorEq,
				Value:    key,
				Table:    roomModel.TableName,
			},
		},
	}
}
