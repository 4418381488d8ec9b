package catalog

import (
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeListing = "Listing"
	AggregateTypeComment = "Comment"
)

// Catalog domain event types
const (
	EventTypeListingPosted  = "ListingPosted"
	EventTypeListingRemoved = "ListingRemoved"
	EventTypeCommentPosted  = "CommentPosted"
	EventTypeCommentDeleted = "CommentDeleted"
)

// ListingPostedEvent is published when a listing is created
type ListingPostedEvent struct {
	shared.BaseDomainEvent
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// NewListingPostedEvent creates a new ListingPostedEvent
func NewListingPostedEvent(listing *Listing) *ListingPostedEvent {
	return &ListingPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingPosted, AggregateTypeListing, listing.ID, listing.OwnerID),
		Name:            listing.Name,
		Price:           listing.Price,
	}
}

// ListingRemovedEvent is published when a listing and its dependants are deleted
type ListingRemovedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewListingRemovedEvent creates a new ListingRemovedEvent
func NewListingRemovedEvent(listing *Listing, actor uuid.UUID) *ListingRemovedEvent {
	return &ListingRemovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingRemoved, AggregateTypeListing, listing.ID, actor),
		Name:            listing.Name,
	}
}

// CommentPostedEvent is published when a comment is added to a listing
type CommentPostedEvent struct {
	shared.BaseDomainEvent
	ListingID uuid.UUID `json:"listing_id"`
}

// NewCommentPostedEvent creates a new CommentPostedEvent
func NewCommentPostedEvent(comment *Comment) *CommentPostedEvent {
	return &CommentPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCommentPosted, AggregateTypeComment, comment.ID, comment.AuthorID),
		ListingID:       comment.ListingID,
	}
}

// CommentDeletedEvent is published when an author deletes a comment
type CommentDeletedEvent struct {
	shared.BaseDomainEvent
	ListingID uuid.UUID `json:"listing_id"`
}

// NewCommentDeletedEvent creates a new CommentDeletedEvent
func NewCommentDeletedEvent(comment *Comment) *CommentDeletedEvent {
	return &CommentDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCommentDeleted, AggregateTypeComment, comment.ID, comment.AuthorID),
		ListingID:       comment.ListingID,
	}
}
