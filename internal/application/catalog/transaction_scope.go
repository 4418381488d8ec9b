package catalog

import (
	"context"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a listing touches.
// Everything done inside Execute commits or rolls back as one unit.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories sharing one transaction.
// CartRepo is included because removing a listing also removes it from every cart.
type TransactionalRepositories interface {
	ListingRepo() catalog.ListingRepository
	CommentRepo() catalog.CommentRepository
	CartRepo() trade.CartRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
// It is used in unit tests where the repositories are mocks.
type NoOpTransactionScope struct {
	listingRepo catalog.ListingRepository
	commentRepo catalog.CommentRepository
	cartRepo    trade.CartRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	listingRepo catalog.ListingRepository,
	commentRepo catalog.CommentRepository,
	cartRepo trade.CartRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		listingRepo: listingRepo,
		commentRepo: commentRepo,
		cartRepo:    cartRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// ListingRepo returns the listing repository.
func (s *NoOpTransactionScope) ListingRepo() catalog.ListingRepository {
	return s.listingRepo
}

// CommentRepo returns the comment repository.
func (s *NoOpTransactionScope) CommentRepo() catalog.CommentRepository {
	return s.commentRepo
}

// CartRepo returns the cart repository.
func (s *NoOpTransactionScope) CartRepo() trade.CartRepository {
	return s.cartRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
