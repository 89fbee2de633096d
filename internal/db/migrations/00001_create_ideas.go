package migrations

// The ideas table is a Go migration because column types differ by driver:
// TIMESTAMPTZ on PostgreSQL, DATETIME(6) plus an explicit utf8mb4 charset on
// MySQL (280 characters must fit multi-byte text), and DATETIME on SQLite.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateIdeas, downCreateIdeas)
}

func upCreateIdeas(ctx context.Context, tx *sql.Tx) error {
	var ddl string
	switch dialect {
	case "postgres":
		ddl = `CREATE TABLE IF NOT EXISTS ideas (
    id         TEXT PRIMARY KEY,
    text       VARCHAR(280) NOT NULL,
    upvotes    INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	case "mysql":
		ddl = `CREATE TABLE IF NOT EXISTS ideas (
    id         VARCHAR(36) PRIMARY KEY,
    text       VARCHAR(280) NOT NULL,
    upvotes    INT UNSIGNED NOT NULL DEFAULT 0,
    created_at DATETIME(6) NOT NULL
) DEFAULT CHARSET=utf8mb4`
	default: // sqlite3
		ddl = `CREATE TABLE IF NOT EXISTS ideas (
    id         TEXT PRIMARY KEY,
    text       TEXT NOT NULL,
    upvotes    INTEGER NOT NULL DEFAULT 0 CHECK (upvotes >= 0),
    created_at DATETIME NOT NULL
)`
	}
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create ideas table: %w", err)
	}
	_, err := tx.ExecContext(ctx, `CREATE INDEX idx_ideas_popularity ON ideas (upvotes DESC, created_at DESC)`)
	return err
}

func downCreateIdeas(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS ideas`)
	return err
}
