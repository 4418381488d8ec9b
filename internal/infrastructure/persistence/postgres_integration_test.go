//go:build integration

package persistence

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/campusmarket/backend/internal/infrastructure/config"
	"github.com/campusmarket/backend/internal/infrastructure/migration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// newPostgresDatabase starts a disposable PostgreSQL container and migrates it
func newPostgresDatabase(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("market_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	u, err := url.Parse(dsn)
	require.NoError(t, err)
	port, err := strconv.Atoi(u.Port())
	require.NoError(t, err)
	password, _ := u.User.Password()

	cfg := &config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         u.Hostname(),
		Port:         port,
		User:         u.User.Username(),
		Password:     password,
		DBName:       "market_test",
		SSLMode:      "disable",
		MaxOpenConns: 10,
		MaxIdleConns: 2,
	}

	db, err := NewDatabase(cfg, zap.NewNop(), gormlogger.Silent)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	m, err := migration.NewFromConfig(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	return db
}

func TestPostgres_RepositoriesAndCascade(t *testing.T) {
	db := newPostgresDatabase(t)
	ctx := context.Background()

	seller := seedAccount(t, db, "seller")
	buyer := seedAccount(t, db, "buyer")
	listing := seedListing(t, db, seller, "Road bike", "149.99")

	loaded, err := NewGormListingRepository(db.DB).FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "149.99", loaded.Price.StringFixed(2))

	comment, err := catalog.NewComment(listing.ID, buyer.ID, "Does it have lights?")
	require.NoError(t, err)
	require.NoError(t, NewGormCommentRepository(db.DB).Create(ctx, comment))

	entry, err := trade.NewCartEntry(buyer.ID, listing.ID, seller.ID)
	require.NoError(t, err)
	cartRepo := NewGormCartRepository(db.DB)
	require.NoError(t, cartRepo.Create(ctx, entry))

	dup, err := trade.NewCartEntry(buyer.ID, listing.ID, seller.ID)
	require.NoError(t, err)
	assert.ErrorIs(t, cartRepo.Create(ctx, dup), shared.ErrAlreadyExists)

	require.NoError(t, NewGormListingRepository(db.DB).Delete(ctx, listing.ID))

	_, err = NewGormCommentRepository(db.DB).FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = cartRepo.FindByID(ctx, entry.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPostgres_UsernameIsCaseInsensitive(t *testing.T) {
	db := newPostgresDatabase(t)
	seedAccount(t, db, "Alice")

	exists, err := NewGormAccountRepository(db.DB).ExistsByUsername(context.Background(), "ALICE")
	require.NoError(t, err)
	assert.True(t, exists)
}
