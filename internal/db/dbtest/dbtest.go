// Package dbtest provides a seeded in-memory sqlite database for tests.
package dbtest

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoUserManagement/UserManagement/internal/config"
	"github.com/GoUserManagement/UserManagement/internal/db/database"
	"github.com/GoUserManagement/UserManagement/internal/db/dsn"
)

// New returns a migrated database seeded with groups and permissions.
// Sample users are added when withSampleUsers is true.
func New(t *testing.T, withSampleUsers bool) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn.SQLite(config.DB{Path: ":memory:"})), database.Config(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// every connection to :memory: is a new database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, database.Prepare(context.Background(), db, withSampleUsers))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}
