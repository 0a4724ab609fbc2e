package logging

import (
	"context"
	"errors"
	"log/slog"
)

// teeHandler copies each record to every sink that accepts its level.
// The service uses it to write the terminal stream and the log file together.
type teeHandler struct {
	sinks []slog.Handler
}

func newTeeHandler(sinks ...slog.Handler) *teeHandler {
	return &teeHandler{sinks: sinks}
}

func (h *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}

	return false
}

// Handle reports every sink failure, not just the first.
func (h *teeHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	var errs []error

	for _, s := range h.sinks {
		if !s.Enabled(ctx, r.Level) {
			continue
		}

		// Handlers may retain the record, so each gets its own attr slice.
		if err := s.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (h *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.each(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

func (h *teeHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	return h.each(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *teeHandler) each(derive func(slog.Handler) slog.Handler) *teeHandler {
	sinks := make([]slog.Handler, len(h.sinks))
	for i, s := range h.sinks {
		sinks[i] = derive(s)
	}

	return &teeHandler{sinks: sinks}
}

// redactingHandler runs ReplaceAttr for handlers that have no such hook (charm's pretty output).
type redactingHandler struct {
	next        slog.Handler
	replaceAttr func([]string, slog.Attr) slog.Attr
	groups      []string
}

func (h *redactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *redactingHandler) Handle(ctx context.Context, r slog.Record) error { //nolint:gocritic // slog.Handler interface requires value
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(h.replaceAttr(h.groups, a))
		return true
	})

	return h.next.Handle(ctx, out)
}

func (h *redactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = h.replaceAttr(h.groups, a)
	}

	return &redactingHandler{next: h.next.WithAttrs(redacted), replaceAttr: h.replaceAttr, groups: h.groups}
}

func (h *redactingHandler) WithGroup(name string) slog.Handler {
	groups := append(append([]string(nil), h.groups...), name)

	return &redactingHandler{next: h.next.WithGroup(name), replaceAttr: h.replaceAttr, groups: groups}
}
