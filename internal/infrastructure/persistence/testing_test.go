package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory SQLite database with the full schema applied.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	database, err := NewSQLiteDatabase(":memory:")
	require.NoError(t, err)

	// A second pooled connection would see its own empty :memory: database.
	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(database.DB))

	t.Cleanup(func() { _ = database.Close() })

	return database.DB
}
