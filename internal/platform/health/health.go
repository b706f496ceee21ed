package health

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"aquads/pkg/platform/httputil"
)

const checkTimeout = 2 * time.Second

// Checker reports whether a dependency is reachable.
type Checker func(ctx context.Context) error

// Handler answers readiness probes. Required checks decide the status code;
// optional ones are reported but never fail the endpoint. Failure causes are
// logged, never returned: the endpoint is public.
type Handler struct {
	logger   *slog.Logger
	required map[string]Checker
	optional map[string]Checker
}

func New(logger *slog.Logger) *Handler {
	return &Handler{
		logger:   logger,
		required: make(map[string]Checker),
		optional: make(map[string]Checker),
	}
}

// Require adds a check that turns the response into a 503 when it fails.
func (h *Handler) Require(name string, check Checker) *Handler {
	h.required[name] = check
	return h
}

// Observe adds a check that is reported without affecting the status.
func (h *Handler) Observe(name string, check Checker) *Handler {
	h.optional[name] = check
	return h
}

type report struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	rep := report{Status: "ok", Checks: make(map[string]string)}
	status := http.StatusOK

	for _, name := range sortedKeys(h.required) {
		if err := h.required[name](ctx); err != nil {
			h.logger.ErrorContext(ctx, "health check failed", "check", name, "error", err)
			rep.Checks[name] = "unavailable"
			rep.Status = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		rep.Checks[name] = "ok"
	}
	for _, name := range sortedKeys(h.optional) {
		if err := h.optional[name](ctx); err != nil {
			h.logger.WarnContext(ctx, "health check failed", "check", name, "error", err)
			rep.Checks[name] = "unavailable"
			if rep.Status == "ok" {
				rep.Status = "degraded"
			}
			continue
		}
		rep.Checks[name] = "ok"
	}

	httputil.WriteJSON(w, status, rep)
}

func sortedKeys(m map[string]Checker) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
