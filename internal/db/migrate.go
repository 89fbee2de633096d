package db

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/joestump/ideaboard/internal/db/migrations"
)

//go:embed migrations
var Migrations embed.FS

// Migrate runs all pending goose migrations from the embedded migration files.
// It must be called before the HTTP server starts accepting requests.
func Migrate(db *sqlx.DB, driver string, log *zap.Logger) error {
	return withGoose(driver, log, func() error {
		if err := goose.Up(db.DB, "."); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
		return nil
	})
}

// Status logs the applied state of every embedded migration.
func Status(db *sqlx.DB, driver string, log *zap.Logger) error {
	return withGoose(driver, log, func() error {
		if err := goose.Status(db.DB, "."); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		return nil
	})
}

// Version returns the current schema version.
func Version(db *sqlx.DB, driver string) (int64, error) {
	var v int64
	err := withGoose(driver, zap.NewNop(), func() error {
		var err error
		v, err = goose.GetDBVersion(db.DB)
		return err
	})
	return v, err
}

func withGoose(driver string, log *zap.Logger, fn func() error) error {
	gooseDriver, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	if err := goose.SetDialect(gooseDriver); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	migrations.SetDialect(gooseDriver)
	goose.SetLogger(&gooseLogger{log: log.Sugar()})

	sub, err := fs.Sub(Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("sub migrations fs: %w", err)
	}

	goose.SetBaseFS(sub)
	defer goose.SetBaseFS(nil)

	return fn()
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case "sqlite3", "libsql":
		return "sqlite3", nil
	case "mysql":
		return "mysql", nil
	case "postgres", "pgx":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unknown driver for goose dialect: %q", driver)
	}
}

// gooseLogger routes goose output through zap.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}
