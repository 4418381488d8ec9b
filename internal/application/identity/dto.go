package identity

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterInput contains the data needed to create an account
type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput contains the credentials for authentication
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the issued access token and the authenticated account
type LoginResult struct {
	AccessToken string
	TokenID     string
	TokenType   string
	ExpiresAt   time.Time
	Account     AccountDTO
}

// LogoutInput identifies the token to revoke
type LogoutInput struct {
	AccountID uuid.UUID
	TokenID   string
	ExpiresAt time.Time
}

// AccountDTO is the public view of an account. It never carries the password hash.
type AccountDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Avatar      string     `json:"avatar"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// ToAccountDTO converts a domain account
func ToAccountDTO(a *identity.Account) AccountDTO {
	return AccountDTO{
		ID:          a.ID,
		Username:    a.Username,
		Email:       a.Email,
		Avatar:      a.Avatar,
		CreatedAt:   a.CreatedAt,
		LastLoginAt: a.LastLoginAt,
	}
}
