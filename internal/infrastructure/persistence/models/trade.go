package models

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// CartEntryModel is the persistence model for the CartEntry entity.
// (buyer_id, listing_id) is unique so a listing sits in a cart at most once.
type CartEntryModel struct {
	BaseModel
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_entries_buyer_listing"`
	ListingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_entries_buyer_listing;index"`
	AddedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartEntryModel) TableName() string {
	return "cart_entries"
}

// ToDomain converts the persistence model to a domain CartEntry.
func (m *CartEntryModel) ToDomain() *trade.CartEntry {
	return &trade.CartEntry{
		BaseEntity: m.BaseModel.ToDomain(),
		BuyerID:    m.BuyerID,
		ListingID:  m.ListingID,
		AddedAt:    m.AddedAt.UTC(),
	}
}

// FromDomain populates the persistence model from a domain CartEntry.
func (m *CartEntryModel) FromDomain(e *trade.CartEntry) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.BuyerID = e.BuyerID
	m.ListingID = e.ListingID
	m.AddedAt = e.AddedAt
}

// CartEntryModelFromDomain creates a new persistence model from a domain CartEntry.
func CartEntryModelFromDomain(e *trade.CartEntry) *CartEntryModel {
	m := &CartEntryModel{}
	m.FromDomain(e)
	return m
}
