package persistence

import (
	"context"

	appcatalog "github.com/campusmarket/backend/internal/application/catalog"
	apptrade "github.com/campusmarket/backend/internal/application/trade"
	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements the application transaction scopes using GORM transactions.
// The same value serves the catalog and trade services.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// CatalogScope adapts the scope to the catalog application package.
func (s *GormTransactionScope) CatalogScope() appcatalog.TransactionScope {
	return catalogScope{s}
}

// TradeScope adapts the scope to the trade application package.
func (s *GormTransactionScope) TradeScope() apptrade.TransactionScope {
	return tradeScope{s}
}

func (s *GormTransactionScope) run(ctx context.Context, fn func(repos *gormTransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

type catalogScope struct{ s *GormTransactionScope }

// Execute runs fn within a database transaction.
func (c catalogScope) Execute(ctx context.Context, fn func(repos appcatalog.TransactionalRepositories) error) error {
	return c.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

type tradeScope struct{ s *GormTransactionScope }

// Execute runs fn within a database transaction.
func (t tradeScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return t.s.run(ctx, func(repos *gormTransactionalRepositories) error { return fn(repos) })
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ListingRepo returns the listing repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ListingRepo() catalog.ListingRepository {
	return NewGormListingRepository(r.tx)
}

// CommentRepo returns the comment repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CommentRepo() catalog.CommentRepository {
	return NewGormCommentRepository(r.tx)
}

// CartRepo returns the cart repository scoped to the current transaction.
func (r *gormTransactionalRepositories) CartRepo() trade.CartRepository {
	return NewGormCartRepository(r.tx)
}

var (
	_ appcatalog.TransactionScope          = catalogScope{}
	_ apptrade.TransactionScope            = tradeScope{}
	_ appcatalog.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
	_ apptrade.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
)
