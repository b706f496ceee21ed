package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"AQUADS_ADDR", "DATABASE_DRIVER", "DATABASE_PATH", "DATABASE_URL", "REDIS_URL", "SUBMIT_RATE_LIMIT", "KAFKA_BROKERS", "TRUSTED_PROXIES"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "./aquads.db", cfg.Database.Path)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.RateLimit.Enabled())
	assert.False(t, cfg.Events.Enabled())
	proxies, err := cfg.Server.Proxies()
	require.NoError(t, err)
	assert.Empty(t, proxies)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AQUADS_ADDR", ":8081")
	t.Setenv("DATABASE_DRIVER", "Postgres")
	t.Setenv("DATABASE_URL", "postgres://aquads@localhost/aquads")
	t.Setenv("SUBMIT_RATE_LIMIT", "5")
	t.Setenv("SUBMIT_RATE_WINDOW", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8081", cfg.Server.Addr)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.True(t, cfg.RateLimit.Enabled())
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Events.Brokers)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Server:   Server{MaxBodyBytes: 1024},
		Database: Database{Driver: DriverSQLite, Path: "aquads.db"},
	}
	require.NoError(t, valid.Validate())

	t.Run("postgres requires url", func(t *testing.T) {
		cfg := valid
		cfg.Database = Database{Driver: DriverPostgres}
		assert.ErrorContains(t, cfg.Validate(), "DATABASE_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		cfg := valid
		cfg.Database.Driver = "mysql"
		assert.ErrorContains(t, cfg.Validate(), "unsupported DATABASE_DRIVER")
	})

	t.Run("rate limit needs window", func(t *testing.T) {
		cfg := valid
		cfg.RateLimit = RateLimit{Limit: 3}
		assert.ErrorContains(t, cfg.Validate(), "SUBMIT_RATE_WINDOW")
	})
}

func TestServerProxies(t *testing.T) {
	t.Run("cidrs and bare addresses", func(t *testing.T) {
		s := Server{TrustedProxies: []string{"10.0.0.0/8", " 192.0.2.10 ", "2001:db8::/32", ""}}

		proxies, err := s.Proxies()

		require.NoError(t, err)
		require.Len(t, proxies, 3)
		assert.Equal(t, "10.0.0.0/8", proxies[0].String())
		assert.Equal(t, "192.0.2.10/32", proxies[1].String())
		assert.Equal(t, "2001:db8::/32", proxies[2].String())
	})

	t.Run("invalid entry fails validation", func(t *testing.T) {
		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8,not-an-ip")

		_, err := FromEnv()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRUSTED_PROXIES")
	})
}
