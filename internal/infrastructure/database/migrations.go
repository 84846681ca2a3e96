package database

import (
	"fmt"
	"log"

	migrate "github.com/rubenv/sql-migrate"
	"gorm.io/gorm"
)

// migrationsByDialect holds the schema of the summaries table for each
// supported engine. timestamps is JSON text on SQLite and JSONB on Postgres;
// is_favorite is 0/1 on SQLite and BOOLEAN on Postgres.
var migrationsByDialect = map[string][]*migrate.Migration{
	"sqlite": {
		{
			Id: "0001_create_summaries",
			Up: []string{`CREATE TABLE IF NOT EXISTS summaries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id TEXT NOT NULL,
	video_url TEXT NOT NULL,
	title TEXT NOT NULL,
	summary TEXT NOT NULL,
	transcript TEXT NOT NULL,
	language TEXT NOT NULL,
	timestamps TEXT NOT NULL DEFAULT '[]',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	is_favorite INTEGER NOT NULL DEFAULT 0
)`},
			Down: []string{`DROP TABLE IF EXISTS summaries`},
		},
		{
			Id:   "0002_summaries_created_at_idx",
			Up:   []string{`CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries (created_at DESC, id DESC)`},
			Down: []string{`DROP INDEX IF EXISTS idx_summaries_created_at`},
		},
	},
	"postgres": {
		{
			Id: "0001_create_summaries",
			Up: []string{`CREATE TABLE IF NOT EXISTS summaries (
	id BIGSERIAL PRIMARY KEY,
	video_id VARCHAR(64) NOT NULL,
	video_url TEXT NOT NULL,
	title TEXT NOT NULL,
	summary TEXT NOT NULL,
	transcript TEXT NOT NULL,
	language VARCHAR(255) NOT NULL,
	timestamps JSONB NOT NULL DEFAULT '[]'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	is_favorite BOOLEAN NOT NULL DEFAULT FALSE
)`},
			Down: []string{`DROP TABLE IF EXISTS summaries`},
		},
		{
			Id:   "0002_summaries_created_at_idx",
			Up:   []string{`CREATE INDEX IF NOT EXISTS idx_summaries_created_at ON summaries (created_at DESC, id DESC)`},
			Down: []string{`DROP INDEX IF EXISTS idx_summaries_created_at`},
		},
	},
}

// sql-migrate names the SQLite dialect after the mattn driver
var migrateDialects = map[string]string{
	"sqlite":   "sqlite3",
	"postgres": "postgres",
}

// MigrationSource returns the migrations for a GORM dialector name
func MigrationSource(dialect string) (*migrate.MemoryMigrationSource, error) {
	migrations, ok := migrationsByDialect[dialect]
	if !ok {
		return nil, fmt.Errorf("no migrations for dialect %q", dialect)
	}
	return &migrate.MemoryMigrationSource{Migrations: migrations}, nil
}

// Migrate applies pending migrations in the given direction. Applying Up
// on an up-to-date schema is a no-op, so it is safe on every start.
func Migrate(db *gorm.DB, dir migrate.MigrationDirection) (int, error) {
	dialect := db.Dialector.Name()
	source, err := MigrationSource(dialect)
	if err != nil {
		return 0, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return 0, fmt.Errorf("failed to get db connection during migrate, error: %v", err)
	}

	n, err := migrate.Exec(sqlDB, migrateDialects[dialect], source, dir)
	if err != nil {
		return 0, fmt.Errorf("failed to apply migration, error: %v", err)
	}
	return n, nil
}

// AutoMigrate brings the schema up to date
func AutoMigrate(db *gorm.DB) error {
	log.Println("🔄 Applying migrations using sql-migrate...")

	n, err := Migrate(db, migrate.Up)
	if err != nil {
		return err
	}

	log.Printf("✅ Applied %d migrations!\n", n)
	return nil
}
