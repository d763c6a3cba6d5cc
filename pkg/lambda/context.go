package lambda

import "context"

type contextKey string

const requestIDKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying the invocation request ID
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the invocation request ID, or "" when none was set
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
