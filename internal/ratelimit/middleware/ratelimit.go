package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"aquads/internal/platform/metrics"
	"aquads/internal/ratelimit/models"
	dErrors "aquads/pkg/domain-errors"
	"aquads/pkg/platform/httputil"
	"aquads/pkg/platform/sentinel"
	"aquads/pkg/requestcontext"
)

// Store counts requests per key within a window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (models.Result, error)
}

type degradable interface {
	Degraded() bool
}

type Middleware struct {
	store   Store
	limit   int
	window  time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Middleware)

func WithMetrics(m *metrics.Metrics) Option {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

func New(store Store, limit int, window time.Duration, logger *slog.Logger, opts ...Option) *Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Middleware{
		store:  store,
		limit:  limit,
		window: window,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RateLimit throttles requests per client IP and route. Store failures let
// the request through.
func (m *Middleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ip := requestcontext.Client(ctx).IP
		route := r.URL.Path
		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		result, err := m.store.Allow(ctx, route+":"+ip, m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check rate limit",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if d, ok := m.store.(degradable); ok && d.Degraded() {
			w.Header().Set("X-RateLimit-Status", "degraded")
		}

		if !result.Allowed {
			if m.metrics != nil {
				m.metrics.IncrementRateLimited(route)
			}
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"route", route,
				"request_id", requestcontext.RequestID(ctx),
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter(m.now())))
			httputil.WriteError(w, dErrors.Wrap(sentinel.ErrRateLimited, dErrors.CodeRateLimited, "too many requests, please try again later"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func addRateLimitHeaders(w http.ResponseWriter, result models.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}
