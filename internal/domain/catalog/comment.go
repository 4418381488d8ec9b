package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Comment length bounds
const (
	CommentMinLength = 1
	CommentMaxLength = 200
)

// Comment is a note left by an account on a listing
type Comment struct {
	shared.BaseEntity
	ListingID uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	PostedAt  time.Time
}

// NewComment creates a comment on listingID written by authorID
func NewComment(listingID, authorID uuid.UUID, content string) (*Comment, error) {
	if listingID == uuid.Nil {
		return nil, shared.NewValidationError("Comment listing is required")
	}
	if authorID == uuid.Nil {
		return nil, shared.NewValidationError("Comment author is required")
	}
	content = strings.TrimSpace(content)
	n := utf8.RuneCountInString(content)
	if n < CommentMinLength {
		return nil, shared.NewValidationError("Comment cannot be empty")
	}
	if n > CommentMaxLength {
		return nil, shared.NewValidationError("Comment cannot exceed 200 characters")
	}

	comment := &Comment{
		BaseEntity: shared.NewBaseEntity(),
		ListingID:  listingID,
		AuthorID:   authorID,
		Content:    content,
	}
	comment.PostedAt = comment.CreatedAt
	return comment, nil
}

// IsWrittenBy reports whether the account authored this comment
func (c *Comment) IsWrittenBy(accountID uuid.UUID) bool {
	return c.AuthorID == accountID
}

// EnsureDeletableBy returns Forbidden unless requester is the author
func (c *Comment) EnsureDeletableBy(requester uuid.UUID) error {
	if !c.IsWrittenBy(requester) {
		return shared.NewDomainError(shared.CodeForbidden, "Only the author can delete this comment")
	}
	return nil
}
