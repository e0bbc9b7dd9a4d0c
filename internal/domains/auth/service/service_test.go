package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"cohost/config"
	"cohost/infras/jwt"
	jwtMocks "cohost/infras/jwt/mocks"
	"cohost/infras/otel/mocks"
	"cohost/internal/domains/auth/model/dto"
	"cohost/internal/domains/auth/service"
	userModel "cohost/internal/domains/user/model"
	userMocks "cohost/internal/domains/user/mocks"
	"cohost/shared/constant"
	"cohost/shared/failure"
	"cohost/shared/password"
)

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	return service.New(mockRepo, cfg, mockOtel, mockJWT), mockRepo, mockJWT
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.RegisterRequest
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name: "successful registration",
			req: dto.RegisterRequest{
				Email:          "owner@example.com",
				Password:       "supersecret",
				RestaurantName: "The Copper Pot",
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
				repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "email already registered",
			req: dto.RegisterRequest{
				Email:          "owner@example.com",
				Password:       "supersecret",
				RestaurantName: "The Copper Pot",
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr: true,
		},
		{
			name: "repository error",
			req: dto.RegisterRequest{
				Email:          "owner@example.com",
				Password:       "supersecret",
				RestaurantName: "The Copper Pot",
			},
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.Register(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.Hash("supersecret")
	assert.NoError(t, err)

	activeUser := userModel.User{
		ID:             "account-1",
		Email:          "owner@example.com",
		Password:       hashed,
		RestaurantName: "The Copper Pot",
		Active:         true,
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "supersecret"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeUser, nil)
				jwtSvc.EXPECT().
					GenerateTokenPair(activeUser.ID, activeUser.Email).
					Return(&jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}, nil)
				repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(int64(1), nil)
			},
			wantErr: false,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "not-the-password"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeUser, nil)
			},
			wantErr: true,
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "supersecret"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "owner@example.com", Password: "supersecret"},
			setupMock: func(repo *userMocks.MockUser, jwtSvc *jwtMocks.MockJWT) {
				inactive := activeUser
				inactive.Active = false

				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(inactive, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, jwtSvc := newService(t)
			tt.setupMock(repo, jwtSvc)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, activeUser.ID, res.User.ID)
			assert.Equal(t, "access", res.Tokens.AccessToken)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(jwtSvc *jwtMocks.MockJWT)
		wantErr   bool
	}{
		{
			name: "successful refresh",
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().
					RefreshTokens("refresh-token").
					Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)
			},
			wantErr: false,
		},
		{
			name: "invalid refresh token",
			setupMock: func(jwtSvc *jwtMocks.MockJWT) {
				jwtSvc.EXPECT().
					RefreshTokens("refresh-token").
					Return(nil, jwt.ErrInvalidToken)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, jwtSvc := newService(t)
			tt.setupMock(jwtSvc)

			res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 401, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "new-access", res.Tokens.AccessToken)
		})
	}
}

func TestAuthService_VerifyPassword(t *testing.T) {
	hashed, err := password.Hash("supersecret")
	assert.NoError(t, err)

	tests := []struct {
		name      string
		plain     string
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name:  "correct password",
			plain: "supersecret",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "account-1", Password: hashed}, nil)
			},
			wantErr: false,
		},
		{
			name:  "wrong password",
			plain: "guess",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "account-1", Password: hashed}, nil)
			},
			wantErr: true,
		},
		{
			name:  "unknown user",
			plain: "supersecret",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			err := svc.VerifyPassword(context.Background(), "account-1", tt.plain)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 401, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAuthService_Me(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *userMocks.MockUser)
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{ID: "account-1", Email: "owner@example.com", RestaurantName: "The Copper Pot"}, nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func(repo *userMocks.MockUser) {
				repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setupMock(repo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "account-1")
			res, err := svc.Me(ctx)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "account-1", res.ID)
		})
	}
}
