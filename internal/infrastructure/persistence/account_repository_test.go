package persistence

import (
	"context"
	"testing"

	"github.com/campusmarket/backend/internal/domain/identity"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormAccountRepository_CreateAndFind(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()

	account, err := identity.NewAccount("alice", "Alice@Campus.edu", "secret123")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, account))

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Equal(t, "alice@campus.edu", byID.Email)
	assert.Equal(t, identity.DefaultAvatar, byID.Avatar)
	assert.True(t, byID.VerifyPassword("secret123"))
	assert.Empty(t, byID.GetDomainEvents())

	byEmail, err := repo.FindByEmail(ctx, "  ALICE@campus.edu ")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
}

func TestGormAccountRepository_NotFound(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "nobody@campus.edu")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByEmail(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAccountRepository_Exists(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()
	seedAccount(t, db, "Bob")

	exists, err := repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByEmail(ctx, "BOB@campus.edu")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGormAccountRepository_UniqueConstraints(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()
	seedAccount(t, db, "dave")

	sameName, err := identity.NewAccount("DAVE", "other@campus.edu", "secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, sameName), shared.ErrAlreadyExists)

	sameEmail, err := identity.NewAccount("david", "dave@campus.edu", "secret123")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, sameEmail), shared.ErrAlreadyExists)
}

func TestGormAccountRepository_Update(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()
	account := seedAccount(t, db, "erin")

	account.RecordLogin()
	require.NoError(t, repo.Update(ctx, account))

	loaded, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.LastLoginAt)
	assert.True(t, loaded.LastLoginAt.Equal(*account.LastLoginAt))
	assert.Equal(t, 2, loaded.Version)
}

func TestGormAccountRepository_FindByIDs(t *testing.T) {
	db := newTestDatabase(t)
	repo := NewGormAccountRepository(db.DB)
	ctx := context.Background()
	a := seedAccount(t, db, "frank")
	b := seedAccount(t, db, "grace")

	accounts, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	accounts, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}
