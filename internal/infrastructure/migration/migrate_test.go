package migration

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{})
	require.NoError(t, err)
	db, err := gdb.DB()
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestMigrator_UpDownSQLite(t *testing.T) {
	db := openMemoryDB(t)

	m, err := New(db, "sqlite", zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, m.Up())
	for _, table := range []string{"accounts", "listings", "comments", "cart_entries"} {
		assert.True(t, tableExists(t, db, table), table)
	}

	version, _, err = m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(4), version)

	// A second Up is a no-op
	require.NoError(t, m.Up())

	require.NoError(t, m.Steps(-1))
	assert.False(t, tableExists(t, db, "cart_entries"))
	assert.True(t, tableExists(t, db, "comments"))

	require.NoError(t, m.Down())
	assert.False(t, tableExists(t, db, "accounts"))
}

func TestMigrator_GoToAndForce(t *testing.T) {
	db := openMemoryDB(t)

	m, err := New(db, "sqlite", zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.GoTo(2))
	assert.True(t, tableExists(t, db, "listings"))
	assert.False(t, tableExists(t, db, "comments"))

	require.NoError(t, m.Force(1))
	version, dirty, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestMigrator_CloseKeepsSharedSQLiteConnection(t *testing.T) {
	db := openMemoryDB(t)

	m, err := New(db, "sqlite", zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, m.Up())
	require.NoError(t, m.Close())

	assert.NoError(t, db.Ping())
	assert.True(t, tableExists(t, db, "accounts"))
}

func TestNew_UnsupportedDriver(t *testing.T) {
	db := openMemoryDB(t)
	_, err := New(db, "mysql", zap.NewNop())
	assert.Error(t, err)
}
