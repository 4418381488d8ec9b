package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormListingRepository_CreateAndFind(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormListingRepository(db.DB)
	ctx := context.Background()
	owner := seedAccount(t, db, "seller")

	listing := seedListing(t, db, owner, "Desk lamp", "12.50")

	loaded, err := repo.FindByID(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", loaded.Name)
	assert.True(t, decimal.RequireFromString("12.50").Equal(loaded.Price))
	assert.Equal(t, owner.ID, loaded.OwnerID)
	assert.Equal(t, catalog.DefaultImage, loaded.Image)
	assert.True(t, listing.PostedAt.Equal(loaded.PostedAt))

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormListingRepository_RequiresExistingOwner(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormListingRepository(db.DB)

	listing, err := catalog.NewListing(uuid.New(), "Orphan", "No owner", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(context.Background(), listing), shared.ErrNotFound)
}

func TestGormListingRepository_FindAllNewestFirst(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormListingRepository(db.DB)
	ctx := context.Background()
	owner := seedAccount(t, db, "seller")

	base := time.Now().UTC().Truncate(time.Second)
	names := []string{"oldest", "middle", "newest"}
	for i, name := range names {
		listing, err := catalog.NewListing(owner.ID, name, "desc", decimal.NewFromInt(int64(i+1)))
		require.NoError(t, err)
		listing.PostedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, listing))
	}

	listings, total, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, listings, 3)
	assert.Equal(t, "newest", listings[0].Name)
	assert.Equal(t, "middle", listings[1].Name)
	assert.Equal(t, "oldest", listings[2].Name)

	page, total, err := repo.FindAll(ctx, shared.Filter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "oldest", page[0].Name)
}

func TestGormListingRepository_Delete(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormListingRepository(db.DB)
	ctx := context.Background()
	owner := seedAccount(t, db, "seller")
	listing := seedListing(t, db, owner, "Chair", "20")

	require.NoError(t, repo.Delete(ctx, listing.ID))
	_, err := repo.FindByID(ctx, listing.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, listing.ID), shared.ErrNotFound)
}

func TestGormListingRepository_DeleteCascadesAtDatabaseLevel(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	owner := seedAccount(t, db, "seller")
	buyer := seedAccount(t, db, "buyer")
	listing := seedListing(t, db, owner, "Bike", "80")

	comment, err := catalog.NewComment(listing.ID, buyer.ID, "Still available?")
	require.NoError(t, err)
	require.NoError(t, NewGormCommentRepository(db.DB).Create(ctx, comment))
	entry := seedCartEntry(t, db, buyer, listing)

	require.NoError(t, NewGormListingRepository(db.DB).Delete(ctx, listing.ID))

	_, err = NewGormCommentRepository(db.DB).FindByID(ctx, comment.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = NewGormCartRepository(db.DB).FindByID(ctx, entry.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormListingRepository_FindByIDs(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormListingRepository(db.DB)
	owner := seedAccount(t, db, "seller")
	a := seedListing(t, db, owner, "A", "1")
	b := seedListing(t, db, owner, "B", "2")

	listings, err := repo.FindByIDs(context.Background(), []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, listings, 2)
}
