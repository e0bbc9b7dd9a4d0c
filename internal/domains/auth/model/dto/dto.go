package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "cohost/internal/domains/user/model"
	"cohost/infras/jwt"
	gModel "cohost/shared/model"
	"cohost/shared/timezone"
)

type RegisterRequest struct {
	Email          string `json:"email"           validate:"required,email,max=255"`
	Password       string `json:"password"        validate:"required,min=8,max=72"`
	RestaurantName string `json:"restaurant_name" validate:"required,max=100"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:             id,
		Email:          r.Email,
		Password:       hashedPassword,
		RestaurantName: r.RestaurantName,
		Active:         true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  id,
			ModifiedBy: id,
		},
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (t *TokenResponse) FromTokenPair(pair *jwt.TokenPair) {
	t.AccessToken = pair.AccessToken
	t.RefreshToken = pair.RefreshToken
	t.TokenType = pair.TokenType
	t.ExpiresIn = pair.ExpiresIn
}

type LoginResponse struct {
	User   MeResponse    `json:"user"`
	Tokens TokenResponse `json:"tokens"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	Tokens TokenResponse `json:"tokens"`
}

type MeResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	RestaurantName string  `json:"restaurant_name"`
	LastLogin      *string `json:"last_login"`
}

func (m *MeResponse) FromModel(mod userModel.User) {
	m.ID = mod.ID
	m.Email = mod.Email
	m.RestaurantName = mod.RestaurantName
	m.LastLogin = mod.LastLogin
}

type UpdateMeRequest struct {
	RestaurantName string `db:"restaurant_name" json:"restaurant_name" validate:"required,max=100"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
}
