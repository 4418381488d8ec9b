package trade

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart entry persistence
type CartRepository interface {
	// Create inserts a new entry. A duplicate (buyer, listing) pair is reported as already-exists.
	Create(ctx context.Context, entry *CartEntry) error

	// FindByID finds an entry by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CartEntry, error)

	// FindByBuyerAndListing finds the entry for a buyer and listing
	FindByBuyerAndListing(ctx context.Context, buyerID, listingID uuid.UUID) (*CartEntry, error)

	// FindByBuyer returns every entry in a buyer's cart, newest first
	FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*CartEntry, error)

	// Delete removes a single entry
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByIDs removes the given entries and returns how many rows went away
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)

	// DeleteByListing removes every entry referencing a listing
	DeleteByListing(ctx context.Context, listingID uuid.UUID) (int64, error)
}
