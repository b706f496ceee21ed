package testutil

import (
	"net/http"

	"aquads/pkg/requestcontext"
)

// WithRequestID adds a request ID to the request context, as the RequestID
// middleware would.
func WithRequestID(req *http.Request, requestID string) *http.Request {
	return req.WithContext(requestcontext.WithRequestID(req.Context(), requestID))
}

// WithClientIP adds caller metadata with the given IP to the request context,
// as the ClientMetadata middleware would.
func WithClientIP(req *http.Request, ip string) *http.Request {
	info := requestcontext.Client(req.Context())
	info.IP = ip
	return req.WithContext(requestcontext.WithClient(req.Context(), info))
}
