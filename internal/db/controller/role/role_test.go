package role

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/dirauthd/dirauthd/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(&models.Role{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestGet(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Ensure(db, "Admin", "full access"))

	t.Run("nil database", func(t *testing.T) {
		_, err := Get(nil, "Admin")
		assert.ErrorIs(t, err, ErrDBNil)
	})

	t.Run("empty identifier", func(t *testing.T) {
		_, err := Get(db, "")
		assert.ErrorIs(t, err, ErrIdentifierEmpty)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Get(db, "Ghost")
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("found", func(t *testing.T) {
		r, err := Get(db, "Admin")
		require.NoError(t, err)
		assert.Equal(t, "Admin", r.Identifier)
		assert.Equal(t, "full access", r.Description)
	})
}

func TestExists(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, Ensure(db, "Editor", ""))

	t.Run("nil database", func(t *testing.T) {
		_, err := Exists(nil, "Editor")
		assert.ErrorIs(t, err, ErrDBNil)
	})

	t.Run("empty identifier", func(t *testing.T) {
		exists, err := Exists(db, "")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("known role", func(t *testing.T) {
		exists, err := Exists(db, "Editor")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown role", func(t *testing.T) {
		exists, err := Exists(db, "Ghost")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestEnsure(t *testing.T) {
	db := setupTestDB(t)

	t.Run("nil database", func(t *testing.T) {
		assert.ErrorIs(t, Ensure(nil, "Admin", ""), ErrDBNil)
	})

	t.Run("empty identifier", func(t *testing.T) {
		assert.ErrorIs(t, Ensure(db, "", ""), ErrIdentifierEmpty)
	})

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, Ensure(db, "Admin", "first"))
		require.NoError(t, Ensure(db, "Admin", "second"))

		var count int64
		require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)

		r, err := Get(db, "Admin")
		require.NoError(t, err)
		assert.Equal(t, "first", r.Description)
	})
}
