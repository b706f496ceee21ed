// Package database opens the relational store behind the form tables.
//
// SQLite (modernc.org/sqlite, pure Go) is the default: one file on local disk,
// opened once at startup and shared by every request. Postgres (pgx stdlib) is
// selected with DATABASE_DRIVER=postgres. Both are exposed as *sqlx.DB so the
// store writes one set of queries and rebinds placeholders per driver.
package database

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"aquads/internal/platform/config"
)

// driverName maps a configured driver to its database/sql registration.
var driverName = map[string]string{
	config.DriverSQLite:   "sqlite",
	config.DriverPostgres: "pgx",
}

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

const pingTimeout = 5 * time.Second

// Open connects to the configured database, applies pending migrations and
// returns the shared handle. Callers own the handle and must Close it.
func Open(ctx context.Context, cfg config.Database) (*sqlx.DB, error) {
	name, ok := driverName[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", cfg.Driver, err)
	}
	if cfg.Driver == config.DriverSQLite {
		// WAL lets the pool read concurrently; writers still take turns on the
		// file lock, waiting up to the busy timeout.
		db.SetMaxOpenConns(4)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", cfg.Driver, err)
	}

	if err := Migrate(cfg); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func dataSourceName(cfg config.Database) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		path := strings.TrimSpace(cfg.Path)
		if path == "" {
			return "", fmt.Errorf("sqlite path is required")
		}
		return "file:" + filepath.Clean(path) +
			"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", nil
	case config.DriverPostgres:
		if strings.TrimSpace(cfg.URL) == "" {
			return "", fmt.Errorf("postgres url is required")
		}
		return cfg.URL, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
