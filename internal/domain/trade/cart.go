package trade

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartLine is a cart entry joined with the listing data needed to price it
type CartLine struct {
	EntryID   uuid.UUID
	ListingID uuid.UUID
	Name      string
	Image     string
	Price     decimal.Decimal
	AddedAt   time.Time
}

// Cart is the set of entries held by one buyer
type Cart struct {
	BuyerID uuid.UUID
	Lines   []CartLine
}

// NewCart creates a cart for buyerID from its priced lines
func NewCart(buyerID uuid.UUID, lines []CartLine) *Cart {
	if lines == nil {
		lines = make([]CartLine, 0)
	}
	return &Cart{BuyerID: buyerID, Lines: lines}
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount returns the number of lines
func (c *Cart) ItemCount() int {
	return len(c.Lines)
}

// Total sums the prices of all lines
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Price)
	}
	return total
}

// EntryIDs returns the IDs of the entries backing the cart lines
func (c *Cart) EntryIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(c.Lines))
	for i, line := range c.Lines {
		ids[i] = line.EntryID
	}
	return ids
}

// Checkout settles the cart. It fails with ErrEmptyCart when there is
// nothing to buy and otherwise returns the completion event.
func (c *Cart) Checkout() (*CheckoutCompletedEvent, error) {
	if c.IsEmpty() {
		return nil, shared.ErrEmptyCart
	}
	listingIDs := make([]uuid.UUID, len(c.Lines))
	for i, line := range c.Lines {
		listingIDs[i] = line.ListingID
	}
	return NewCheckoutCompletedEvent(c.BuyerID, listingIDs, c.Total()), nil
}
