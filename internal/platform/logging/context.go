package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type ctxKey struct{}

var fallback atomic.Pointer[slog.Logger]

func init() {
	fallback.Store(slog.Default())
}

// SetDefault installs logger as both the package fallback and slog's default.
func SetDefault(logger *slog.Logger) {
	fallback.Store(logger)
	slog.SetDefault(logger)
}

// FromContext returns the request-scoped logger, or the default one.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOr(ctx, fallback.Load())
}

// FromContextOr is FromContext with a caller-chosen fallback, used by
// components that own a logger but still want request attributes.
func FromContextOr(ctx context.Context, def *slog.Logger) *slog.Logger {
	if ctx == nil {
		return def
	}

	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}

	return def
}

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// WithRequestID tags subsequent log lines with request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "request_id", id)
}

// WithTraceID tags subsequent log lines with the OpenTelemetry trace_id.
func WithTraceID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "trace_id", id)
}

// WithCorrelationID tags subsequent log lines with correlation_id.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return withAttr(ctx, "correlation_id", id)
}

func withAttr(ctx context.Context, key, value string) context.Context {
	return WithContext(ctx, FromContext(ctx).With(slog.String(key, value)))
}
