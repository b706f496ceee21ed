package httptransport

import (
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"aquads/internal/platform/metrics"
	"aquads/internal/platform/middleware"
	dErrors "aquads/pkg/domain-errors"
	"aquads/pkg/platform/httputil"
)

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries the shared pieces every route needs.
type RouterConfig struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	Health         http.Handler
	RequestTimeout time.Duration
	TrustedProxies []netip.Prefix
}

// NewRouter wires the middleware chain, the health and metrics endpoints and every module.
func NewRouter(cfg RouterConfig, modules ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata(cfg.TrustedProxies))
	r.Use(middleware.Logger(cfg.Logger))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}
	if cfg.Metrics != nil {
		r.Use(middleware.LatencyMiddleware(cfg.Metrics))
	}

	if cfg.Health != nil {
		r.Method(http.MethodGet, "/healthz", cfg.Health)
	}
	if cfg.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	for _, m := range modules {
		m.Register(r)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, httputil.Envelope{Message: "method not allowed"})
	})
	return r
}
