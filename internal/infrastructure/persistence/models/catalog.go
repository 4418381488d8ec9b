package models

import (
	"time"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListingModel is the persistence model for the Listing aggregate.
type ListingModel struct {
	AggregateModel
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Description string          `gorm:"type:text;not null"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Image       string          `gorm:"type:varchar(255);not null;default:'default.jpg'"`
	PostedAt    time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (ListingModel) TableName() string {
	return "listings"
}

// ToDomain converts the persistence model to a domain Listing.
func (m *ListingModel) ToDomain() *catalog.Listing {
	return &catalog.Listing{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OwnerID:           m.OwnerID,
		Name:              m.Name,
		Description:       m.Description,
		Price:             m.Price,
		Image:             m.Image,
		PostedAt:          m.PostedAt.UTC(),
	}
}

// FromDomain populates the persistence model from a domain Listing.
func (m *ListingModel) FromDomain(l *catalog.Listing) {
	m.FromDomainAggregateRoot(l.BaseAggregateRoot)
	m.OwnerID = l.OwnerID
	m.Name = l.Name
	m.Description = l.Description
	m.Price = l.Price
	m.Image = l.Image
	m.PostedAt = l.PostedAt
}

// ListingModelFromDomain creates a new persistence model from a domain Listing.
func ListingModelFromDomain(l *catalog.Listing) *ListingModel {
	m := &ListingModel{}
	m.FromDomain(l)
	return m
}

// CommentModel is the persistence model for the Comment entity.
type CommentModel struct {
	BaseModel
	ListingID uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Content   string    `gorm:"type:varchar(200);not null"`
	PostedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// ToDomain converts the persistence model to a domain Comment.
func (m *CommentModel) ToDomain() *catalog.Comment {
	return &catalog.Comment{
		BaseEntity: m.BaseModel.ToDomain(),
		ListingID:  m.ListingID,
		AuthorID:   m.AuthorID,
		Content:    m.Content,
		PostedAt:   m.PostedAt.UTC(),
	}
}

// FromDomain populates the persistence model from a domain Comment.
func (m *CommentModel) FromDomain(c *catalog.Comment) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ListingID = c.ListingID
	m.AuthorID = c.AuthorID
	m.Content = c.Content
	m.PostedAt = c.PostedAt
}

// CommentModelFromDomain creates a new persistence model from a domain Comment.
func CommentModelFromDomain(c *catalog.Comment) *CommentModel {
	m := &CommentModel{}
	m.FromDomain(c)
	return m
}
