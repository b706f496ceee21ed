// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services and stores read them without importing
// net/http:
//
//	requestID := requestcontext.RequestID(ctx)
//	client := requestcontext.Client(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithClient(ctx, requestcontext.ClientInfo{IP: "203.0.113.9"})
package requestcontext

import "context"

type (
	requestIDKey struct{}
	clientKey    struct{}
)

// ClientInfo describes the caller of a request.
type ClientInfo struct {
	IP        string
	UserAgent string
	Browser   string
	OS        string
	Bot       bool
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Client retrieves caller metadata from the context.
// Returns the zero value if not set.
func Client(ctx context.Context) ClientInfo {
	if info, ok := ctx.Value(clientKey{}).(ClientInfo); ok {
		return info
	}
	return ClientInfo{}
}

// WithClient injects caller metadata into the context.
func WithClient(ctx context.Context, info ClientInfo) context.Context {
	return context.WithValue(ctx, clientKey{}, info)
}
