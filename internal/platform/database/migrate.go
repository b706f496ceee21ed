package database

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"aquads/internal/platform/config"
)

// MigrationFS embeds one migration set per supported driver.
//
//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var MigrationFS embed.FS

// Migrate applies all pending up migrations for cfg's driver. Tables are
// created with IF NOT EXISTS so a database file written by an earlier
// deployment is adopted rather than rejected.
//
// Migrations run on their own connection so closing the migrator never closes
// the shared request handle.
func Migrate(cfg config.Database) error {
	sourceDriver, err := iofs.New(MigrationFS, "migrations/"+cfg.Driver)
	if err != nil {
		return fmt.Errorf("migrate source: %w", err)
	}

	url, err := migrationURL(cfg)
	if err != nil {
		return err
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, url)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func migrationURL(cfg config.Database) (string, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return "sqlite://" + filepath.ToSlash(filepath.Clean(cfg.Path)), nil
	case config.DriverPostgres:
		for _, scheme := range []string{"postgres://", "postgresql://"} {
			if rest, ok := strings.CutPrefix(cfg.URL, scheme); ok {
				return "pgx5://" + rest, nil
			}
		}
		return "", fmt.Errorf("postgres url must start with postgres:// or postgresql://")
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
