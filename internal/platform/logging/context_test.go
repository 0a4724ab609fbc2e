package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonSink() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{ReplaceAttr: NewReplaceAttr()})), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	return entry
}

func TestFromContext_Fallbacks(t *testing.T) {
	assert.Same(t, fallback.Load(), FromContext(nil)) //nolint:staticcheck // nil context is handled
	assert.Same(t, fallback.Load(), FromContext(context.Background()))

	own := slog.New(slog.NewTextHandler(io.Discard, nil))
	assert.Same(t, own, FromContextOr(context.Background(), own))
	assert.Same(t, own, FromContextOr(nil, own)) //nolint:staticcheck // nil context is handled
}

func TestWithContext_RoundTrip(t *testing.T) {
	stored := slog.New(slog.NewTextHandler(io.Discard, nil))
	other := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx := WithContext(context.Background(), stored)

	assert.Same(t, stored, FromContext(ctx))
	assert.Same(t, stored, FromContextOr(ctx, other))
}

func TestRequestScopedIDs(t *testing.T) {
	tests := []struct {
		name string
		with func(context.Context, string) context.Context
		key  string
	}{
		{"request id", WithRequestID, "request_id"},
		{"trace id", WithTraceID, "trace_id"},
		{"correlation id", WithCorrelationID, "correlation_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := jsonSink()

			ctx := tt.with(WithContext(context.Background(), logger), "id-42")
			FromContext(ctx).InfoContext(ctx, "random quote served")

			assert.Equal(t, "id-42", decodeLine(t, buf)[tt.key])
		})
	}
}

func TestRequestScopedIDs_Stack(t *testing.T) {
	logger, buf := jsonSink()

	ctx := WithContext(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithTraceID(ctx, "4bf92f3577b34da6a3ce929d0e0e4736")
	ctx = WithCorrelationID(ctx, "txn-9")

	FromContext(ctx).Info("quote deleted", slog.String("id", "q1"))

	entry := decodeLine(t, buf)
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	assert.Equal(t, "txn-9", entry["correlation_id"])
	assert.Equal(t, "q1", entry["id"])
}

func TestWithRequestID_KeepsRedaction(t *testing.T) {
	logger, buf := jsonSink()

	ctx := WithRequestID(WithContext(context.Background(), logger), "req-7")
	FromContext(ctx).Info("store opened", slog.String("dsn", "postgres://quotes:hunter2@db/quotes"))

	assert.Contains(t, buf.String(), "req-7")
	assert.NotContains(t, buf.String(), "hunter2")
}

func TestSetDefault(t *testing.T) {
	prev := fallback.Load()
	t.Cleanup(func() { SetDefault(prev) })

	custom := slog.New(slog.NewTextHandler(io.Discard, nil))
	SetDefault(custom)

	assert.Same(t, custom, FromContext(context.Background()))
	assert.Same(t, custom, slog.Default())
}
