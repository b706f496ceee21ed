package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquads/internal/platform/config"
)

func TestOpenSQLiteCreatesTablesIdempotently(t *testing.T) {
	cfg := config.Database{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "aquads.db")}

	db, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	var tables []string
	require.NoError(t, db.Select(&tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name IN ('package_selections', 'strategy_recommendations', 'contact_forms') ORDER BY name`))
	assert.Equal(t, []string{"contact_forms", "package_selections", "strategy_recommendations"}, tables)

	_, err = db.Exec(`INSERT INTO contact_forms (name, email, message) VALUES (?, ?, ?)`, "A", "a@x.com", "hi")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	reopened, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer reopened.Close()

	var count int
	require.NoError(t, reopened.Get(&count, `SELECT COUNT(*) FROM contact_forms`))
	assert.Equal(t, 1, count, "reopening must keep existing rows")
}

func TestOpenSQLitePool(t *testing.T) {
	db, err := Open(context.Background(), config.Database{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "aquads.db")})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, 4, db.Stats().MaxOpenConnections)

	var mode string
	require.NoError(t, db.Get(&mode, `PRAGMA journal_mode`))
	assert.Equal(t, "wal", mode)
	var timeout int
	require.NoError(t, db.Get(&timeout, `PRAGMA busy_timeout`))
	assert.Equal(t, 5000, timeout)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "mysql"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestMigrationURL(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Database
		want string
	}{
		{name: "relative sqlite path", cfg: config.Database{Driver: config.DriverSQLite, Path: "./aquads.db"}, want: "sqlite://aquads.db"},
		{name: "absolute sqlite path", cfg: config.Database{Driver: config.DriverSQLite, Path: "/var/lib/aquads/aquads.db"}, want: "sqlite:///var/lib/aquads/aquads.db"},
		{name: "postgres scheme", cfg: config.Database{Driver: config.DriverPostgres, URL: "postgres://u:p@db:5432/aquads?sslmode=disable"}, want: "pgx5://u:p@db:5432/aquads?sslmode=disable"},
		{name: "postgresql scheme", cfg: config.Database{Driver: config.DriverPostgres, URL: "postgresql://db/aquads"}, want: "pgx5://db/aquads"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := migrationURL(tc.cfg)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := migrationURL(config.Database{Driver: config.DriverPostgres, URL: "host=db dbname=aquads"})
	assert.Error(t, err)
}
