package persistence

import (
	"context"
	"testing"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/identity"
	"github.com/campusmarket/backend/internal/infrastructure/config"
	"github.com/campusmarket/backend/internal/infrastructure/migration"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	identity.PasswordCost = bcrypt.MinCost
}

// newTestDatabase opens a private in-memory SQLite database with the schema migrated
func newTestDatabase(t *testing.T) *Database {
	t.Helper()

	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Path:         ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, zap.NewNop(), gormlogger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	m, err := migration.New(sqlDB, config.DriverSQLite, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	return db
}

func seedAccount(t *testing.T, db *Database, username string) *identity.Account {
	t.Helper()
	account, err := identity.NewAccount(username, username+"@campus.edu", "secret123")
	require.NoError(t, err)
	require.NoError(t, NewGormAccountRepository(db.DB).Create(context.Background(), account))
	return account
}

func seedListing(t *testing.T, db *Database, owner *identity.Account, name string, price string) *catalog.Listing {
	t.Helper()
	listing, err := catalog.NewListing(owner.ID, name, "Gently used", decimal.RequireFromString(price))
	require.NoError(t, err)
	require.NoError(t, NewGormListingRepository(db.DB).Create(context.Background(), listing))
	return listing
}
