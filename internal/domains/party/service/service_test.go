package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cohost/config"
	kafkaMocks "cohost/infras/kafka/mocks"
	"cohost/infras/otel/mocks"
	authMocks "cohost/internal/domains/auth/mocks"
	partyMocks "cohost/internal/domains/party/mocks"
	"cohost/internal/domains/party/model"
	"cohost/internal/domains/party/model/dto"
	"cohost/internal/domains/party/service"
	roomMocks "cohost/internal/domains/room/mocks"
	roomModel "cohost/internal/domains/room/model"
	cacheMocks "cohost/shared/cache/mocks"
	"cohost/shared/constant"
	gDto "cohost/shared/dto"
	"cohost/shared/failure"
)

type serviceMocks struct {
	repo  *partyMocks.MockParty
	rooms *roomMocks.MockRoom
	auth  *authMocks.MockAuth
	cache *cacheMocks.MockRedisCache
	kafka *kafkaMocks.MockClient
}

func newService(t *testing.T) (service.Party, serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := serviceMocks{
		repo:  partyMocks.NewMockParty(ctrl),
		rooms: roomMocks.NewMockRoom(ctrl),
		auth:  authMocks.NewMockAuth(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	m.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(m.repo, m.rooms, m.auth, cfg, m.cache, mocks.NewOtel(), m.kafka)

	return svc, m
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "account-1")
}

func intPtr(v int) *int {
	return &v
}

func TestPartyService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreatePartyRequest
		setupMock func(m serviceMocks)
		wantErr   bool
	}{
		{
			name: "successful creation defaults to waiting in the main room",
			req:  dto.CreatePartyRequest{Name: "Lee", Size: 2},
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, party model.Party) error {
						assert.Equal(t, model.StateWaiting, party.State)
						assert.Equal(t, roomModel.DefaultKey, party.RoomKey)
						assert.Nil(t, party.TableID)
						assert.Equal(t, 1, party.Version)

						return nil
					})
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req:  dto.CreatePartyRequest{Name: "Lee", Size: 2},
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			res, err := svc.Create(testContext(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, model.StateWaiting, res.State)
		})
	}
}

func TestPartyService_Transition(t *testing.T) {
	waiting := model.Party{
		ID:      "party-1",
		UserID:  "account-1",
		Name:    "Lee",
		Size:    2,
		RoomKey: "main",
		State:   model.StateWaiting,
		Version: 1,
	}

	tests := []struct {
		name      string
		req       dto.TransitionPartyRequest
		setupMock func(m serviceMocks)
		wantErr   bool
		wantCode  int
		wantState string
	}{
		{
			name: "seat at a named table",
			req:  dto.TransitionPartyRequest{State: model.StateSeated, TableID: intPtr(5)},
			setupMock: func(m serviceMocks) {
				seated := waiting
				seated.State = model.StateSeated
				seated.TableID = intPtr(5)
				seated.Version = 2

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(waiting, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, model.StateSeated, fields[model.FieldState])
						assert.Equal(t, 5, fields[model.FieldTableID])
						assert.Equal(t, 2, fields[model.FieldVersion])
						assert.Contains(t, fields, model.FieldSeatedAt)

						return 1, nil
					})
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(seated, nil)
			},
			wantState: model.StateSeated,
		},
		{
			name: "unknown state is a validation error",
			req:  dto.TransitionPartyRequest{State: "teleported"},
			setupMock: func(m serviceMocks) {
			},
			wantErr:  true,
			wantCode: 400,
		},
		{
			name: "lost race surfaces as conflict",
			req:  dto.TransitionPartyRequest{State: model.StateCompleted},
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(waiting, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "cross-account party surfaces as not found",
			req:  dto.TransitionPartyRequest{State: model.StateSeated},
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Party{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "completed clears table but keeps seated timestamp",
			req:  dto.TransitionPartyRequest{State: model.StateCompleted},
			setupMock: func(m serviceMocks) {
				seated := waiting
				seated.State = model.StateSeated
				seated.TableID = intPtr(5)
				seated.Version = 2

				completed := seated
				completed.State = model.StateCompleted
				completed.TableID = nil
				completed.Version = 3

				room := roomModel.Room{
					ID:     "room-1",
					UserID: "account-1",
					Key:    "main",
					Tables: roomModel.Tables{
						{ID: 5, Capacity: 4, State: roomModel.TableStateReady},
					},
				}

				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(seated, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Nil(t, fields[model.FieldTableID])
						assert.NotContains(t, fields, model.FieldSeatedAt)

						return 1, nil
					})
				m.rooms.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(room, nil)
				m.rooms.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						tables, ok := fields[roomModel.FieldTables].(roomModel.Tables)
						assert.True(t, ok)
						// The vacated table needs cleaning before reuse.
						assert.Equal(t, roomModel.TableStateNotReady, tables[0].State)

						return 1, nil
					})
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completed, nil)
			},
			wantState: model.StateCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			res, err := svc.Transition(testContext(), tt.req, "party-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantState, res.State)
		})
	}
}

func TestPartyService_Transition_AutoAssign(t *testing.T) {
	waiting := model.Party{
		ID:       "party-1",
		UserID:   "account-1",
		Name:     "Lee",
		Size:     2,
		RoomKey:  "main",
		State:    model.StateWaiting,
		Handicap: true,
		Version:  1,
	}

	room := roomModel.Room{
		ID:     "room-1",
		UserID: "account-1",
		Key:    "main",
		Tables: roomModel.Tables{
			{ID: 1, Capacity: 8, State: roomModel.TableStateReady},
			{ID: 2, Capacity: 2, Handicap: true, State: roomModel.TableStateReady},
		},
	}

	svc, m := newService(t)

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(waiting, nil)
	m.rooms.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(room, nil)
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Party{}, nil)
	m.repo.EXPECT().
		Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
			// The handicap table wins over the larger one.
			assert.Equal(t, 2, fields[model.FieldTableID])

			return 1, nil
		})

	seated := waiting
	seated.State = model.StateSeated
	seated.TableID = intPtr(2)
	seated.Version = 2

	m.repo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(seated, nil)

	res, err := svc.Transition(testContext(), dto.TransitionPartyRequest{State: model.StateSeated, AutoAssign: true}, "party-1")

	assert.NoError(t, err)
	assert.Equal(t, model.StateSeated, res.State)
	assert.Equal(t, intPtr(2), res.TableID)
}

func TestPartyService_UpdateDetails(t *testing.T) {
	existing := model.Party{ID: "party-1", UserID: "account-1", Name: "Lee", Size: 2, Version: 3}

	tests := []struct {
		name      string
		setupMock func(m serviceMocks)
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful patch",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, 4, fields[model.FieldVersion])
						assert.NotContains(t, fields, model.FieldState)

						return 1, nil
					})
			},
		},
		{
			name: "not found",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Party{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "concurrent edit surfaces as conflict",
			setupMock: func(m serviceMocks) {
				m.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(existing, nil)
				m.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			err := svc.UpdateDetails(testContext(), dto.UpdatePartyRequest{Size: intPtr(4)}, "party-1")

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPartyService_PurgeHistory(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(m serviceMocks)
		wantErr   bool
		wantCode  int
		want      int64
	}{
		{
			name: "successful purge",
			setupMock: func(m serviceMocks) {
				m.auth.EXPECT().
					VerifyPassword(gomock.Any(), "account-1", "supersecret").
					Return(nil)
				m.repo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(12), nil)
			},
			want: 12,
		},
		{
			name: "wrong password blocks the purge",
			setupMock: func(m serviceMocks) {
				m.auth.EXPECT().
					VerifyPassword(gomock.Any(), "account-1", "supersecret").
					Return(failure.Unauthorized("password verification failed"))
			},
			wantErr:  true,
			wantCode: 401,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			tt.setupMock(m)

			res, err := svc.PurgeHistory(testContext(), dto.PurgeHistoryRequest{Password: "supersecret"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res.Purged)
		})
	}
}

func TestPartyService_GetCurrent(t *testing.T) {
	svc, m := newService(t)

	m.cache.EXPECT().
		Get(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("cache miss"))
	m.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Party, error) {
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Party{
				{ID: "party-1", State: model.StateWaiting},
				{ID: "party-2", State: model.StateSeated},
			}, nil
		})

	res, err := svc.GetCurrent(testContext())

	assert.NoError(t, err)
	assert.Len(t, res.Parties, 2)
	assert.Equal(t, 2, res.TotalData)
}
