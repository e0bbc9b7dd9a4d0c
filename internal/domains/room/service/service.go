package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"cohost/config"
	"cohost/infras/otel"
	"cohost/infras/s3"
	"cohost/internal/domains/room/model"
	"cohost/internal/domains/room/model/dto"
	"cohost/internal/domains/room/repository"
	"cohost/shared"
	"cohost/shared/cache"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	"cohost/shared/failure"
)

// CachePrefix namespaces every room cache key. The waitlist side clears it
// when seating activity rewrites a layout's stored table states.
const CachePrefix = "room"

const (
	cacheGetRoom    = CachePrefix + ":get"
	cacheGetAllRoom = CachePrefix + ":gets"
	cacheCountRoom  = CachePrefix + ":count"
	cacheRoomKeys   = CachePrefix + ":keys"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	GetKeys(ctx context.Context) (dto.RoomKeysResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Room {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	room := req.ToModel(user, constant.Empty)

	if first, second, overlap := model.FindOverlap(room.Tables); overlap {
		return failure.Placement(fmt.Sprintf("tables %d and %d overlap", first, second))
	}

	keyFilter := filterByUserAndKey(user, room.Key)

	exists, err := s.repo.Exist(ctx, keyFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room key uniqueness")

		return fmt.Errorf("failed to check room key uniqueness: %w", err)
	}

	if exists {
		return failure.Conflict(fmt.Sprintf("a room with key %q already exists", room.Key))
	}

	var uploadedObjectName string
	if req.Image != nil {
		url, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
		if err != nil {
			return err
		}

		room.Image = url
		uploadedObjectName = objectName
	}

	if err = s.repo.Insert(ctx, room); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheRoomKeys)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := filterByUser(user)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRoom, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheGetRoom, user, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterOwnedByID(id, user, model.FieldID, model.FieldUserID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// GetKeys lists the account's room keys for waitlist forms. Accounts with
// no rooms yet still get the conventional default key.
func (s *serviceImpl) GetKeys(ctx context.Context) (res dto.RoomKeysResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetKeys")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKey(cacheRoomKeys, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room keys")

		return res, nil
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldKey, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, filterByUser(user), model.FieldKey)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room keys")

		return res, fmt.Errorf("failed to get room keys: %w", err)
	}

	res.Keys = make([]string, len(models))
	for i, mod := range models {
		res.Keys[i] = mod.Key
	}

	if len(res.Keys) == 0 {
		res.Keys = []string{model.DefaultKey}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room keys to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterOwnedByID(id, user, model.FieldID, model.FieldUserID, model.TableName)

	currentRoom, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return err
	}

	if currentRoom.ID == constant.Empty {
		log.Error().Msg("room not found")

		return failure.NotFound("room not found")
	}

	return s.updateInternal(ctx, req, currentRoom, user, filter)
}

func (s *serviceImpl) updateInternal(ctx context.Context, req dto.UpdateRoomRequest, currentRoom model.Room, user string, filter gDto.FilterGroup) error {
	updatedFields := shared.TransformFields(req, user)

	if req.Tables != nil {
		tables := req.ToTables()

		if first, second, overlap := model.FindOverlap(tables); overlap {
			return failure.Placement(fmt.Sprintf("tables %d and %d overlap", first, second))
		}

		updatedFields[model.FieldTables] = tables
	}

	imageURL := constant.Empty
	var uploadedObjectName string
	bucketName := s.cfg.External.S3.BucketName

	if req.Image != nil {
		url, objectName, err := s.uploadImage(ctx, req.ImageFile, req.Image)
		if err != nil {
			return err
		}

		imageURL = url
		uploadedObjectName = objectName
		updatedFields[model.FieldImage] = imageURL
	}

	if _, err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update room")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update room: %w", err)
	}

	// Delete old image if update succeeded and new image was uploaded
	if imageURL != constant.Empty && currentRoom.Image != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, currentRoom.Image)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, user, currentRoom.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheRoomKeys)
	}()

	return nil
}

// Delete removes a room layout. Parties still referencing the room's key
// keep it; they become logically unroomed rather than being touched here.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterOwnedByID(id, user, model.FieldID, model.FieldUserID, model.TableName)

	currentRoom, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check room existence")

		return fmt.Errorf("failed to check room existence: %w", err)
	}

	if currentRoom.ID == constant.Empty {
		log.Error().Msg("room not found")

		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if _, err := s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	if currentRoom.Image != constant.Empty {
		bucketName := s.cfg.External.S3.BucketName

		objectName := s.s3.GetObjectNameFromURL(bucketName, currentRoom.Image)
		if objectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetRoom, user, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllRoom)
		shared.InvalidateCaches(c, s.cache, cacheCountRoom)
		shared.InvalidateCaches(c, s.cache, cacheRoomKeys)
	}()

	return nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, string, error) {
	bucketName := s.cfg.External.S3.BucketName
	filename := uuid.NewString()

	// Get original extension
	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, filename, nil
}

func filterByUser(user string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    user,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

func filterByUserAndKey(user, key string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Value:    user,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldKey,
				Value:    key,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}
