package health

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(context.Context) error { return nil }

func failing(context.Context) error {
	return errors.New("open /var/lib/aquads/aquads.db: connection refused")
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func serve(t *testing.T, h http.Handler) (int, report) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	var rep report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	return rec.Code, rep
}

func TestHandler(t *testing.T) {
	t.Run("all healthy", func(t *testing.T) {
		code, rep := serve(t, New(discard).Require("database", ok).Observe("redis", ok))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", rep.Status)
		assert.Equal(t, map[string]string{"database": "ok", "redis": "ok"}, rep.Checks)
	})

	t.Run("required check failing", func(t *testing.T) {
		code, rep := serve(t, New(discard).Require("database", failing))

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unavailable", rep.Status)
		assert.Equal(t, "unavailable", rep.Checks["database"])
	})

	t.Run("failure cause is logged, not returned", func(t *testing.T) {
		var logs bytes.Buffer
		h := New(slog.New(slog.NewTextHandler(&logs, nil))).Require("database", failing)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.NotContains(t, rec.Body.String(), "aquads.db")
		assert.Contains(t, logs.String(), "/var/lib/aquads/aquads.db")
	})

	t.Run("optional check failing", func(t *testing.T) {
		code, rep := serve(t, New(discard).Require("database", ok).Observe("redis", failing))

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "degraded", rep.Status)
		assert.Equal(t, "unavailable", rep.Checks["redis"])
	})
}
