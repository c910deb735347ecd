// Package httpmeta carries per-request metadata through the context.
package httpmeta

import "context"

// contextKey is an unexported type for context keys in this package.
// A custom type prevents collisions with keys from other packages that use
// the same underlying string.
type contextKey string

const (
	// HeaderXRequestID is the inbound correlation header.
	HeaderXRequestID = "x-request-id"

	ctxKeyRequestID contextKey = "request_id"
)

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, id)
}

// RequestID returns the request ID from the context, "" when absent.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}
