package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultImage is the image reference used when a listing is posted without a picture
const DefaultImage = "default.jpg"

// Listing field bounds
const (
	ListingNameMaxLength        = 100
	ListingDescriptionMaxLength = 5000
	ImageRefMaxLength           = 255
)

// MaxPrice is the largest price a listing may carry
var MaxPrice = decimal.NewFromInt(1_000_000)

// Listing represents an item posted for sale.
// It is the aggregate root for comments and cart entries referencing it.
type Listing struct {
	shared.BaseAggregateRoot
	OwnerID     uuid.UUID
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	PostedAt    time.Time
}

// NewListing creates a new listing owned by ownerID
func NewListing(ownerID uuid.UUID, name, description string, price decimal.Decimal) (*Listing, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewValidationError("Listing owner is required")
	}
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if err := validateListingName(name); err != nil {
		return nil, err
	}
	if err := validateListingDescription(description); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}

	listing := &Listing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OwnerID:           ownerID,
		Name:              name,
		Description:       description,
		Price:             price.Round(2),
		Image:             DefaultImage,
	}
	listing.PostedAt = listing.CreatedAt

	listing.AddDomainEvent(NewListingPostedEvent(listing))

	return listing, nil
}

// SetImage sets the stored image reference; an empty value restores the default
func (l *Listing) SetImage(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = DefaultImage
	}
	if len(ref) > ImageRefMaxLength {
		return shared.NewValidationError("Image reference cannot exceed 255 characters")
	}
	l.Image = ref
	l.Touch()
	l.IncrementVersion()
	return nil
}

// HasCustomImage reports whether the listing carries an uploaded image
func (l *Listing) HasCustomImage() bool {
	return l.Image != "" && l.Image != DefaultImage
}

// IsOwnedBy reports whether the account owns this listing
func (l *Listing) IsOwnedBy(accountID uuid.UUID) bool {
	return l.OwnerID == accountID
}

// Remove checks that requester may delete the listing and records the removal event
func (l *Listing) Remove(requester uuid.UUID) error {
	if !l.IsOwnedBy(requester) {
		return shared.NewDomainError(shared.CodeForbidden, "Only the owner can delete this listing")
	}
	l.AddDomainEvent(NewListingRemovedEvent(l, requester))
	return nil
}

func validateListingName(name string) error {
	if name == "" {
		return shared.NewValidationError("Listing name cannot be empty")
	}
	if utf8.RuneCountInString(name) > ListingNameMaxLength {
		return shared.NewValidationError("Listing name cannot exceed 100 characters")
	}
	return nil
}

func validateListingDescription(description string) error {
	if description == "" {
		return shared.NewValidationError("Listing description cannot be empty")
	}
	if utf8.RuneCountInString(description) > ListingDescriptionMaxLength {
		return shared.NewValidationError("Listing description cannot exceed 5000 characters")
	}
	return nil
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewValidationError("Price cannot be negative")
	}
	if price.GreaterThan(MaxPrice) {
		return shared.NewValidationError("Price cannot exceed 1000000")
	}
	return nil
}
