package trade

import (
	"context"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the cart repositories.
// Checkout reads and clears a cart inside a single Execute call.
type TransactionScope interface {
	// Execute runs fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides repositories sharing one transaction.
type TransactionalRepositories interface {
	CartRepo() trade.CartRepository
	ListingRepo() catalog.ListingRepository
}

// NoOpTransactionScope runs fn directly against the given repositories.
type NoOpTransactionScope struct {
	cartRepo    trade.CartRepository
	listingRepo catalog.ListingRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(cartRepo trade.CartRepository, listingRepo catalog.ListingRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{cartRepo: cartRepo, listingRepo: listingRepo}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// CartRepo returns the cart repository.
func (s *NoOpTransactionScope) CartRepo() trade.CartRepository {
	return s.cartRepo
}

// ListingRepo returns the listing repository.
func (s *NoOpTransactionScope) ListingRepo() catalog.ListingRepository {
	return s.listingRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
