package config

import (
	"errors"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Server    Server
	Database  Database
	Log       Log
	RateLimit RateLimit
	Events    Events
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"AQUADS_ADDR" envDefault:":3000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	MaxBodyBytes    int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	// TrustedProxies lists CIDRs or addresses whose X-Forwarded-For and
	// X-Real-IP headers are believed. Empty means the peer address is the client.
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Proxies parses TrustedProxies. Bare addresses become single-host prefixes.
func (s Server) Proxies() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(s.TrustedProxies))
	for _, raw := range s.TrustedProxies {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if strings.Contains(raw, "/") {
			p, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %w", err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// Database selects the store backend. SQLite is the default embedded store;
// Postgres is available for deployments that outgrow a single file.
type Database struct {
	Driver string `env:"DATABASE_DRIVER" envDefault:"sqlite"`
	Path   string `env:"DATABASE_PATH" envDefault:"./aquads.db"`
	URL    string `env:"DATABASE_URL"`
}

// Log configures the slog handler.
type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// RateLimit throttles the public submission endpoints per client IP.
// Limit 0 disables it. RedisURL empty keeps counters in process memory.
type RateLimit struct {
	RedisURL string        `env:"REDIS_URL"`
	Limit    int           `env:"SUBMIT_RATE_LIMIT" envDefault:"0"`
	Window   time.Duration `env:"SUBMIT_RATE_WINDOW" envDefault:"1m"`
}

// Enabled reports whether submissions are throttled.
func (r RateLimit) Enabled() bool {
	return r.Limit > 0
}

// Events configures the optional submission event stream.
type Events struct {
	Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	Topic   string   `env:"KAFKA_TOPIC" envDefault:"aquads.form-submissions"`
}

// Enabled reports whether any broker is configured.
func (e Events) Enabled() bool {
	return len(e.Brokers) > 0
}

// FromEnv builds and validates Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, errors.New("DATABASE_PATH is required for the sqlite driver"))
		}
	case DriverPostgres:
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported DATABASE_DRIVER %q", c.Database.Driver))
	}
	if c.RateLimit.Limit < 0 {
		errs = append(errs, errors.New("SUBMIT_RATE_LIMIT must not be negative"))
	}
	if c.RateLimit.Enabled() && c.RateLimit.Window <= 0 {
		errs = append(errs, errors.New("SUBMIT_RATE_WINDOW must be positive"))
	}
	if c.Events.Enabled() && strings.TrimSpace(c.Events.Topic) == "" {
		errs = append(errs, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if _, err := c.Server.Proxies(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
