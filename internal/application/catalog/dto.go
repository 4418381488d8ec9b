package catalog

import (
	"io"
	"time"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateListingRequest is the form or JSON body for posting a listing
type CreateListingRequest struct {
	Name        string `json:"name" form:"name" binding:"required,min=1,max=100"`
	Price       string `json:"price" form:"price" binding:"required,max=20"`
	Description string `json:"description" form:"description" binding:"required,min=1,max=5000"`
}

// ImageUpload is an optional image attached to a new listing
type ImageUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// ListListingsRequest selects one page of the newest-first listing feed
type ListListingsRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// AddCommentRequest is the body for commenting on a listing
type AddCommentRequest struct {
	Content string `json:"content" form:"content" binding:"required,min=1,max=200"`
}

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID            uuid.UUID       `json:"id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	OwnerUsername string          `json:"owner_username"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	ImageURL      string          `json:"image_url"`
	PostedAt      time.Time       `json:"posted_at"`
}

// ListingDetailResponse is a listing with its comments, newest first
type ListingDetailResponse struct {
	ListingResponse
	Comments []CommentResponse `json:"comments"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID             uuid.UUID `json:"id"`
	ListingID      uuid.UUID `json:"listing_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	PostedAt       time.Time `json:"posted_at"`
}

// ToListingResponse converts a domain listing
func ToListingResponse(l *catalog.Listing, ownerUsername, imageURL string) ListingResponse {
	return ListingResponse{
		ID:            l.ID,
		OwnerID:       l.OwnerID,
		OwnerUsername: ownerUsername,
		Name:          l.Name,
		Description:   l.Description,
		Price:         l.Price,
		Image:         l.Image,
		ImageURL:      imageURL,
		PostedAt:      l.PostedAt,
	}
}

// ToCommentResponse converts a domain comment
func ToCommentResponse(c *catalog.Comment, authorUsername string) CommentResponse {
	return CommentResponse{
		ID:             c.ID,
		ListingID:      c.ListingID,
		AuthorID:       c.AuthorID,
		AuthorUsername: authorUsername,
		Content:        c.Content,
		PostedAt:       c.PostedAt,
	}
}
