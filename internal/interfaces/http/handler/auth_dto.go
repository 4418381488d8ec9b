package handler

import (
	"time"

	appidentity "github.com/campusmarket/backend/internal/application/identity"
)

// RegisterRequest is the registration form or JSON body
type RegisterRequest struct {
	Username        string `json:"username" form:"username" binding:"required,min=2,max=20"`
	Email           string `json:"email" form:"email" binding:"required,email,max=120"`
	Password        string `json:"password" form:"password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" binding:"required,eqfield=Password"`
}

// LoginRequest is the login form or JSON body
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// TokenResponse carries the issued bearer token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token   TokenResponse          `json:"token"`
	Account appidentity.AccountDTO `json:"account"`
}

// LogoutResponse reports whether a token was revoked
type LogoutResponse struct {
	LoggedOut bool `json:"logged_out"`
}
