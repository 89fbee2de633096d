package db_test

import (
	"testing"

	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/db"
	"github.com/joestump/ideaboard/internal/testutil"
)

func TestMigrate_CreatesIdeasTable(t *testing.T) {
	conn := testutil.NewTestDB(t)

	var count int
	if err := conn.Get(&count, `SELECT COUNT(*) FROM ideas`); err != nil {
		t.Fatalf("query ideas table: %v", err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	var idx int
	err := conn.Get(&idx, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'index' AND name = 'idx_ideas_popularity'`)
	if err != nil {
		t.Fatalf("query index: %v", err)
	}
	if idx != 1 {
		t.Errorf("popularity index count = %d, want 1", idx)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := testutil.NewTestDB(t)
	if err := db.Migrate(conn, "sqlite3", zap.NewNop()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}

	v, err := db.Version(conn, "sqlite3")
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != 1 {
		t.Errorf("version = %d, want 1", v)
	}
}

func TestStatus(t *testing.T) {
	conn := testutil.NewTestDB(t)
	if err := db.Status(conn, "sqlite3", zap.NewNop()); err != nil {
		t.Errorf("Status: %v", err)
	}
}

func TestMigrate_UnknownDriver(t *testing.T) {
	conn := testutil.NewTestDB(t)
	if err := db.Migrate(conn, "oracle", zap.NewNop()); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	if _, err := db.New("oracle", "whatever"); err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestNew_SQLite(t *testing.T) {
	conn, err := db.New("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	db.Tune(conn, db.PoolOptions{MaxOpenConns: 3, MaxIdleConns: 1})
	if got := conn.Stats().MaxOpenConnections; got != 3 {
		t.Errorf("MaxOpenConnections = %d, want 3", got)
	}
	if err := conn.Ping(); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestNew_AcceptsEveryListedDriver(t *testing.T) {
	dsns := map[string]string{
		"sqlite3":  "file:drivers?mode=memory&cache=shared",
		"mysql":    "u:p@tcp(127.0.0.1:3306)/ideaboard?parseTime=true",
		"postgres": "postgres://u:p@127.0.0.1:5432/ideaboard?sslmode=disable",
		"pgx":      "postgres://u:p@127.0.0.1:5432/ideaboard?sslmode=disable",
	}
	for _, driver := range db.Drivers {
		t.Run(driver, func(t *testing.T) {
			if driver == "libsql" {
				t.Skip("libsql connects on open")
			}
			dsn, ok := dsns[driver]
			if !ok {
				t.Fatalf("no test DSN for driver %q", driver)
			}
			// sql.Open does not dial, so no server is needed.
			conn, err := db.New(driver, dsn)
			if err != nil {
				t.Fatalf("New(%q): %v", driver, err)
			}
			_ = conn.Close()
		})
	}
}
