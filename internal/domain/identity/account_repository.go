package identity

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence
type AccountRepository interface {
	// Create inserts a new account. A unique-key violation is reported as an already-exists error.
	Create(ctx context.Context, account *Account) error

	// Update saves changes to an existing account
	Update(ctx context.Context, account *Account) error

	// FindByID finds an account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByEmail finds an account by its normalized email
	FindByEmail(ctx context.Context, email string) (*Account, error)

	// FindByIDs returns the accounts with the given IDs, in no particular order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Account, error)

	// ExistsByUsername checks if a username is taken, ignoring case
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail checks if an email is taken
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
