package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cohost/config"
	"cohost/infras/otel/mocks"
	s3Mocks "cohost/infras/s3/mocks"
	roomMocks "cohost/internal/domains/room/mocks"
	"cohost/internal/domains/room/model"
	"cohost/internal/domains/room/model/dto"
	"cohost/internal/domains/room/service"
	cacheMocks "cohost/shared/cache/mocks"
	"cohost/shared/constant"
	"cohost/shared/failure"
)

func newService(t *testing.T) (service.Room, *roomMocks.MockRoom, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	return service.New(mockRepo, cfg, mockCache, mockOtel, mockS3), mockRepo, mockCache
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "account-1")
}

func TestRoomService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req: dto.CreateRoomRequest{
				Name: "Main Dining Room",
				Tables: []dto.TableRequest{
					{ID: 1, Capacity: 4, X: 100, Y: 100, Shape: model.ShapeSquare},
					{ID: 2, Capacity: 2, X: 300, Y: 100, Shape: model.ShapeCircle},
				},
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "overlapping tables rejected",
			req: dto.CreateRoomRequest{
				Name: "Patio",
				Tables: []dto.TableRequest{
					{ID: 1, Capacity: 4, X: 100, Y: 100, Shape: model.ShapeSquare},
					{ID: 2, Capacity: 2, X: 120, Y: 100, Shape: model.ShapeSquare},
				},
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {},
			wantErr:   true,
			wantCode:  409,
		},
		{
			name: "duplicate key rejected",
			req: dto.CreateRoomRequest{
				Name: "Main Dining Room",
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req: dto.CreateRoomRequest{
				Name: "Bar",
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			err := svc.Create(testContext(), tt.req)

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_Get(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "found",
			id:   "room-1",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", UserID: "account-1", Name: "Main", Key: "main"}, nil)
				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "cross-account room surfaces as not found",
			id:   "room-of-other-account",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(testContext(), tt.id)

			if !tt.wantErr {
				assert.NoError(t, err)
				assert.Equal(t, tt.id, res.ID)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_GetKeys(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantKeys  []string
	}{
		{
			name: "returns stored keys",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Room{{Key: "main"}, {Key: "patio"}}, nil)
				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantKeys: []string{"main", "patio"},
		},
		{
			name: "falls back to default key when account has no rooms",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Room{}, nil)
				cache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantKeys: []string{model.DefaultKey},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			res, err := svc.GetKeys(testContext())

			assert.NoError(t, err)
			assert.Equal(t, tt.wantKeys, res.Keys)
		})
	}
}

func TestRoomService_Update(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.UpdateRoomRequest
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful table move",
			req: dto.UpdateRoomRequest{
				Tables: []dto.TableRequest{
					{ID: 1, Capacity: 4, X: 100, Y: 100, Shape: model.ShapeSquare},
				},
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", UserID: "account-1"}, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "overlapping move leaves layout unchanged",
			req: dto.UpdateRoomRequest{
				Tables: []dto.TableRequest{
					{ID: 1, Capacity: 4, X: 100, Y: 100, Shape: model.ShapeSquare},
					{ID: 2, Capacity: 4, X: 130, Y: 100, Shape: model.ShapeSquare},
				},
			},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", UserID: "account-1"}, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "room not found",
			req:  dto.UpdateRoomRequest{Name: "Renamed"},
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			err := svc.Update(testContext(), tt.req, "room-1")

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{ID: "room-1", UserID: "account-1"}, nil)
				repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
				cache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
				cache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(repo *roomMocks.MockRoom, cache *cacheMocks.MockRedisCache) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Room{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, cache := newService(t)
			tt.setupMock(repo, cache)

			err := svc.Delete(testContext(), "room-1")

			if !tt.wantErr {
				assert.NoError(t, err)

				return
			}

			assert.Error(t, err)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			}
		})
	}
}
