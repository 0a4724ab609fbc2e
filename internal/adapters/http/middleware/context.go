// Package middleware provides the gin middleware chain of the HTTP adapter.
package middleware

import "context"

// idKey keys the ids this package stores on a request context.
type idKey int

const (
	requestIDKey idKey = iota
	correlationIDKey
)

func idFrom(ctx context.Context, key idKey) string {
	if ctx == nil {
		return ""
	}

	id, _ := ctx.Value(key).(string)

	return id
}

// RequestIDFromContext returns the id set by RequestID, or "". The upstream
// client forwards it.
func RequestIDFromContext(ctx context.Context) string { return idFrom(ctx, requestIDKey) }

// CorrelationIDFromContext returns the id set by CorrelationID, or "".
func CorrelationIDFromContext(ctx context.Context) string { return idFrom(ctx, correlationIDKey) }

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}
