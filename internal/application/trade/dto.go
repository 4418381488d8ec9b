package trade

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartEntryResponse represents a cart entry in API responses
type CartEntryResponse struct {
	ID        uuid.UUID `json:"id"`
	BuyerID   uuid.UUID `json:"buyer_id"`
	ListingID uuid.UUID `json:"listing_id"`
	AddedAt   time.Time `json:"added_at"`
}

// AddToCartResult reports the entry for the listing and whether it was already present
type AddToCartResult struct {
	Entry         CartEntryResponse `json:"entry"`
	AlreadyInCart bool              `json:"already_in_cart"`
}

// CartLineResponse is one priced line of a cart
type CartLineResponse struct {
	EntryID   uuid.UUID       `json:"entry_id"`
	ListingID uuid.UUID       `json:"listing_id"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
	ImageURL  string          `json:"image_url"`
	Price     decimal.Decimal `json:"price"`
	AddedAt   time.Time       `json:"added_at"`
}

// CartResponse is the buyer's cart with its total
type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Total     decimal.Decimal    `json:"total"`
}

// CheckoutResult summarizes a completed checkout
type CheckoutResult struct {
	ItemCount  int             `json:"item_count"`
	Total      decimal.Decimal `json:"total"`
	ListingIDs []uuid.UUID     `json:"listing_ids"`
}

// ToCartEntryResponse converts a domain cart entry
func ToCartEntryResponse(e *trade.CartEntry) CartEntryResponse {
	return CartEntryResponse{
		ID:        e.ID,
		BuyerID:   e.BuyerID,
		ListingID: e.ListingID,
		AddedAt:   e.AddedAt,
	}
}
