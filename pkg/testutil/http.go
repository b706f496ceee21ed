// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aquads/pkg/platform/httputil"
)

// NewJSONRequest creates an HTTP request with JSON body.
// The body is marshaled to JSON automatically.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewFormRequest creates a POST request with an urlencoded body.
func NewFormRequest(t *testing.T, path string, values url.Values) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// DoRequest executes a request against a handler and returns the recorder.
func DoRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// UnmarshalResponse unmarshals the response body into the target struct.
func UnmarshalResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) *T {
	t.Helper()
	var result T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result), "failed to unmarshal response: %s", rr.Body.String())
	return &result
}

// AssertStatus asserts the response status code matches expected.
func AssertStatus(t *testing.T, rr *httptest.ResponseRecorder, expected int) {
	t.Helper()
	assert.Equal(t, expected, rr.Code, "unexpected status code: %s", rr.Body.String())
}

// AssertFailure asserts the status and that the envelope reports success=false
// with a non-empty message.
func AssertFailure(t *testing.T, rr *httptest.ResponseRecorder, expectedStatus int) *httputil.Envelope {
	t.Helper()
	AssertStatus(t, rr, expectedStatus)
	env := UnmarshalResponse[httputil.Envelope](t, rr)
	assert.False(t, env.Success, "expected success=false")
	assert.NotEmpty(t, env.Message, "expected a failure message")
	return env
}

// AssertSuccess asserts a 200 envelope with success=true.
func AssertSuccess(t *testing.T, rr *httptest.ResponseRecorder) *httputil.Envelope {
	t.Helper()
	AssertStatus(t, rr, http.StatusOK)
	env := UnmarshalResponse[httputil.Envelope](t, rr)
	assert.True(t, env.Success, "expected success=true")
	return env
}
