package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches wrapped domain error", func(t *testing.T) {
		err := fmt.Errorf("outer: %w", New(CodeValidation, "name is required"))
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := Wrap(cause, CodeInternal, "database error")

	require.ErrorIs(t, err, cause)
	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "database error", de.Message)
	assert.Equal(t, "database error: disk I/O error", err.Error())
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:  http.StatusBadRequest,
		CodeBadRequest:  http.StatusBadRequest,
		CodeRateLimited: http.StatusTooManyRequests,
		CodeNotFound:    http.StatusNotFound,
		CodeInternal:    http.StatusInternalServerError,
		Code("unknown"): http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
