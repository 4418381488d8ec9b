package catalog

import (
	"context"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/identity"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommentService handles comments on listings
type CommentService struct {
	listingRepo catalog.ListingRepository
	commentRepo catalog.CommentRepository
	accountRepo identity.AccountRepository
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewCommentService creates a new CommentService. publisher may be nil.
func NewCommentService(
	listingRepo catalog.ListingRepository,
	commentRepo catalog.CommentRepository,
	accountRepo identity.AccountRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CommentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentService{
		listingRepo: listingRepo,
		commentRepo: commentRepo,
		accountRepo: accountRepo,
		publisher:   publisher,
		logger:      logger,
	}
}

// Add posts a comment by author on an existing listing
func (s *CommentService) Add(ctx context.Context, listingID, author uuid.UUID, req AddCommentRequest) (*CommentResponse, error) {
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	comment, err := catalog.NewComment(listingID, author, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logger.Info("comment posted",
		zap.String("comment_id", comment.ID.String()),
		zap.String("listing_id", listingID.String()),
	)
	publish(ctx, s.publisher, s.logger, catalog.NewCommentPostedEvent(comment))

	names := usernames(ctx, s.accountRepo, s.logger, []uuid.UUID{author})
	resp := ToCommentResponse(comment, names[author])
	return &resp, nil
}

// Delete removes a comment. Only its author may delete it.
func (s *CommentService) Delete(ctx context.Context, commentID, requester uuid.UUID) error {
	comment, err := s.commentRepo.FindByID(ctx, commentID)
	if err != nil {
		return err
	}
	if err := comment.EnsureDeletableBy(requester); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	publish(ctx, s.publisher, s.logger, catalog.NewCommentDeletedEvent(comment))
	return nil
}

// ListFor returns every comment on a listing, newest first
func (s *CommentService) ListFor(ctx context.Context, listingID uuid.UUID) ([]CommentResponse, error) {
	if _, err := s.listingRepo.FindByID(ctx, listingID); err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.FindByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	authors := make([]uuid.UUID, len(comments))
	for i, c := range comments {
		authors[i] = c.AuthorID
	}
	names := usernames(ctx, s.accountRepo, s.logger, authors)

	result := make([]CommentResponse, len(comments))
	for i, c := range comments {
		result[i] = ToCommentResponse(c, names[c.AuthorID])
	}
	return result, nil
}
