package trade

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartEntry records a buyer's intent to purchase one listing.
// There is at most one entry per buyer and listing.
type CartEntry struct {
	shared.BaseEntity
	BuyerID   uuid.UUID
	ListingID uuid.UUID
	AddedAt   time.Time
}

// NewCartEntry creates a cart entry for buyerID, rejecting purchases of the
// buyer's own listing.
func NewCartEntry(buyerID, listingID, listingOwnerID uuid.UUID) (*CartEntry, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewValidationError("Buyer is required")
	}
	if listingID == uuid.Nil {
		return nil, shared.NewValidationError("Listing is required")
	}
	if buyerID == listingOwnerID {
		return nil, shared.ErrSelfPurchaseForbidden
	}

	entry := &CartEntry{
		BaseEntity: shared.NewBaseEntity(),
		BuyerID:    buyerID,
		ListingID:  listingID,
	}
	entry.AddedAt = entry.CreatedAt
	return entry, nil
}

// BelongsTo reports whether the entry is in the account's cart
func (e *CartEntry) BelongsTo(accountID uuid.UUID) bool {
	return e.BuyerID == accountID
}

// EnsureRemovableBy returns Forbidden unless requester owns the cart
func (e *CartEntry) EnsureRemovableBy(requester uuid.UUID) error {
	if !e.BelongsTo(requester) {
		return shared.NewDomainError(shared.CodeForbidden, "This cart entry belongs to another account")
	}
	return nil
}
