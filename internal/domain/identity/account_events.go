package identity

import (
	"github.com/campusmarket/backend/internal/domain/shared"
)

// Aggregate type constant for Account
const AggregateTypeAccount = "Account"

// Account domain event types
const (
	EventTypeAccountRegistered    = "AccountRegistered"
	EventTypeAccountAuthenticated = "AccountAuthenticated"
)

// AccountRegisteredEvent is published when an account is created
type AccountRegisteredEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewAccountRegisteredEvent creates a new AccountRegisteredEvent
func NewAccountRegisteredEvent(account *Account) *AccountRegisteredEvent {
	return &AccountRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountRegistered, AggregateTypeAccount, account.ID, account.ID),
		Username:        account.Username,
		Email:           account.Email,
	}
}

// AccountAuthenticatedEvent is published after a successful login
type AccountAuthenticatedEvent struct {
	shared.BaseDomainEvent
	Username string `json:"username"`
}

// NewAccountAuthenticatedEvent creates a new AccountAuthenticatedEvent
func NewAccountAuthenticatedEvent(account *Account) *AccountAuthenticatedEvent {
	return &AccountAuthenticatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountAuthenticated, AggregateTypeAccount, account.ID, account.ID),
		Username:        account.Username,
	}
}
