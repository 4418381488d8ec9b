package trade

import (
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant for carts
const AggregateTypeCart = "Cart"

// Trade domain event types
const (
	EventTypeCartEntryAdded    = "CartEntryAdded"
	EventTypeCheckoutCompleted = "CheckoutCompleted"
)

// CartEntryAddedEvent is published when a listing enters a buyer's cart
type CartEntryAddedEvent struct {
	shared.BaseDomainEvent
	ListingID uuid.UUID `json:"listing_id"`
}

// NewCartEntryAddedEvent creates a new CartEntryAddedEvent
func NewCartEntryAddedEvent(entry *CartEntry) *CartEntryAddedEvent {
	return &CartEntryAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartEntryAdded, AggregateTypeCart, entry.BuyerID, entry.BuyerID),
		ListingID:       entry.ListingID,
	}
}

// CheckoutCompletedEvent is published after a cart is emptied by checkout
type CheckoutCompletedEvent struct {
	shared.BaseDomainEvent
	ListingIDs []uuid.UUID     `json:"listing_ids"`
	Total      decimal.Decimal `json:"total"`
}

// NewCheckoutCompletedEvent creates a new CheckoutCompletedEvent
func NewCheckoutCompletedEvent(buyerID uuid.UUID, listingIDs []uuid.UUID, total decimal.Decimal) *CheckoutCompletedEvent {
	return &CheckoutCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCheckoutCompleted, AggregateTypeCart, buyerID, buyerID),
		ListingIDs:      listingIDs,
		Total:           total,
	}
}
