package dto

import "github.com/spec-kit/planner-service/internal/domain"

// RegisterRequest payload for new accounts. The password cap matches
// bcrypt's 72 byte input limit.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the form-encoded login payload. Username carries the
// account email.
type LoginRequest struct {
	Username string `form:"username" validate:"required,email"`
	Password string `form:"password" validate:"required,max=72"`
}

// UserResponse is returned on successful registration.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// NewUserResponse maps a user to its public shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{ID: user.ID, Email: user.Email}
}

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewTokenResponse maps an issued token to its wire shape.
func NewTokenResponse(token *domain.AccessToken) TokenResponse {
	return TokenResponse{AccessToken: token.Token, TokenType: token.TokenType}
}
