package logging

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingSink accepts every level and fails every write.
type failingSink struct{ err error }

func (f failingSink) Enabled(context.Context, slog.Level) bool  { return true }
func (f failingSink) Handle(context.Context, slog.Record) error { return f.err } //nolint:gocritic // slog.Handler interface requires value
func (f failingSink) WithAttrs([]slog.Attr) slog.Handler        { return f }
func (f failingSink) WithGroup(string) slog.Handler             { return f }

func leveled(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func TestTeeHandler_Enabled(t *testing.T) {
	tests := []struct {
		name  string
		sinks []slog.Level
		level slog.Level
		want  bool
	}{
		{"one sink accepts", []slog.Level{slog.LevelDebug, slog.LevelError}, slog.LevelInfo, true},
		{"no sink accepts", []slog.Level{slog.LevelError, slog.LevelError}, slog.LevelInfo, false},
		{"trace below every sink", []slog.Level{slog.LevelDebug}, LevelTrace, false},
		{"no sinks", nil, slog.LevelError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sinks := make([]slog.Handler, len(tt.sinks))
			for i, l := range tt.sinks {
				sinks[i] = leveled(io.Discard, l)
			}

			assert.Equal(t, tt.want, newTeeHandler(sinks...).Enabled(context.Background(), tt.level))
		})
	}
}

func TestTeeHandler_RoutesByLevel(t *testing.T) {
	var terminal, file bytes.Buffer

	logger := slog.New(newTeeHandler(leveled(&terminal, slog.LevelDebug), leveled(&file, slog.LevelInfo)))

	logger.Info("quote created")
	assert.Contains(t, terminal.String(), "quote created")
	assert.Contains(t, file.String(), "quote created")

	terminal.Reset()
	file.Reset()

	logger.Debug("sample offset chosen")
	assert.Contains(t, terminal.String(), "sample offset chosen")
	assert.Empty(t, file.String())
}

func TestTeeHandler_JoinsSinkErrors(t *testing.T) {
	var ok bytes.Buffer

	errA := errors.New("disk full")
	errB := errors.New("pipe closed")

	h := newTeeHandler(failingSink{errA}, leveled(&ok, slog.LevelInfo), failingSink{errB})
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "import finished", 0))

	require.Error(t, err)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, ok.String(), "import finished")
}

func TestTeeHandler_AttrsAndGroups(t *testing.T) {
	var a, b bytes.Buffer

	tee := newTeeHandler(leveled(&a, slog.LevelInfo), leveled(&b, slog.LevelInfo))
	logger := slog.New(tee.WithAttrs([]slog.Attr{slog.String("component", "importer")}).WithGroup("batch"))

	logger.Info("import finished", slog.Int("added", 3))

	for _, out := range []string{a.String(), b.String()} {
		assert.Contains(t, out, `"component":"importer"`)
		assert.Contains(t, out, `"batch":{"added":3}`)
	}

	assert.Same(t, tee, tee.WithGroup(""))
}

func TestRedactingHandler_GroupsAndAttrs(t *testing.T) {
	var buf bytes.Buffer

	h := &redactingHandler{next: slog.NewJSONHandler(&buf, nil), replaceAttr: NewReplaceAttr()}
	logger := slog.New(h).With(slog.String("token", "with-secret")).WithGroup("store")

	logger.Info("opened", slog.String("password", "call-secret"), slog.String("driver", "sqlite"))

	out := buf.String()
	assert.NotContains(t, out, "with-secret")
	assert.NotContains(t, out, "call-secret")
	assert.Contains(t, out, `"driver":"sqlite"`)
}
