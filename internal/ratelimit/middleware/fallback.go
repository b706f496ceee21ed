package middleware

import (
	"context"
	"log/slog"
	"time"

	"aquads/internal/ratelimit/models"
	"aquads/pkg/platform/circuit"
)

// FallbackStore keeps rate limiting alive through a primary store outage.
// After repeated primary errors the circuit opens and counts come from the
// fallback until the primary answers again; before that, errors are returned
// and the middleware lets the request through.
type FallbackStore struct {
	primary  Store
	fallback Store
	breaker  *circuit.Breaker
	logger   *slog.Logger
}

func NewFallbackStore(primary, fallback Store, breaker *circuit.Breaker, logger *slog.Logger) *FallbackStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackStore{primary: primary, fallback: fallback, breaker: breaker, logger: logger}
}

func (f *FallbackStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (models.Result, error) {
	result, err := f.primary.Allow(ctx, key, limit, window)
	if err != nil {
		useFallback, change := f.breaker.RecordFailure()
		if change.Opened {
			f.logger.WarnContext(ctx, "rate limit store degraded, counting in memory",
				"breaker", f.breaker.Name(),
				"error", err,
			)
		}
		if useFallback {
			return f.fallback.Allow(ctx, key, limit, window)
		}
		return models.Result{}, err
	}

	usePrimary, change := f.breaker.RecordSuccess()
	if change.Closed {
		f.logger.InfoContext(ctx, "rate limit store recovered", "breaker", f.breaker.Name())
	}
	if !usePrimary {
		return f.fallback.Allow(ctx, key, limit, window)
	}
	return result, nil
}

// Degraded reports whether counts currently come from the fallback.
func (f *FallbackStore) Degraded() bool {
	return f.breaker.IsOpen()
}
