package database

import (
	"path/filepath"
	"testing"

	migrate "github.com/rubenv/sql-migrate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_Idempotent(t *testing.T) {
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "history.db"), nil)
	require.NoError(t, err)
	defer CloseDB(db)

	n, err := Migrate(db, migrate.Up)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Second run applies nothing
	n, err = Migrate(db, migrate.Up)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.True(t, db.Migrator().HasTable("summaries"))
	for _, col := range []string{"id", "video_id", "video_url", "title", "summary", "transcript", "language", "timestamps", "created_at", "is_favorite"} {
		assert.True(t, db.Migrator().HasColumn("summaries", col), col)
	}
}

func TestMigrate_Down(t *testing.T) {
	db, err := NewSQLiteDB(":memory:", nil)
	require.NoError(t, err)
	defer CloseDB(db)

	require.NoError(t, AutoMigrate(db))

	n, err := Migrate(db, migrate.Down)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Migrator().HasTable("summaries"))
}

func TestMigrationSource_UnknownDialect(t *testing.T) {
	_, err := MigrationSource("mysql")
	assert.Error(t, err)
}
