package catalog

import (
	"context"

	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ListingRepository defines the interface for listing persistence
type ListingRepository interface {
	// Create inserts a new listing
	Create(ctx context.Context, listing *Listing) error

	// FindByID finds a listing by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindByIDs returns the listings with the given IDs, in no particular order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Listing, error)

	// FindAll returns one page of listings, newest first, and the total count
	FindAll(ctx context.Context, filter shared.Filter) ([]*Listing, int64, error)

	// Delete removes a listing row. Callers remove dependants in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *Comment) error

	// FindByID finds a comment by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// FindByListing returns all comments on a listing, newest first
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]*Comment, error)

	// Delete removes a single comment
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByListing removes every comment on a listing and returns the count
	DeleteByListing(ctx context.Context, listingID uuid.UUID) (int64, error)
}
