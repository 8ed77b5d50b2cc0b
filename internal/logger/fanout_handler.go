package logger

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler sends each record to every sink that accepts its level:
// stdout JSON always, Better Stack when a token is configured.
type FanoutHandler struct {
	sinks []slog.Handler
}

// NewFanoutHandler drops nil sinks.
func NewFanoutHandler(sinks ...slog.Handler) *FanoutHandler {
	h := &FanoutHandler{sinks: make([]slog.Handler, 0, len(sinks))}
	for _, s := range sinks {
		if s != nil {
			h.sinks = append(h.sinks, s)
		}
	}
	return h
}

// Enabled reports whether any sink takes records at level.
func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, s := range h.sinks {
		if s.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle gives each enabled sink its own clone of r. A failing sink does not
// stop the others; all failures are joined.
func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, s := range h.sinks {
		if s.Enabled(ctx, r.Level) {
			errs = append(errs, s.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

// WithAttrs implements slog.Handler.
func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithAttrs(attrs) })
}

// WithGroup implements slog.Handler.
func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	return h.derive(func(s slog.Handler) slog.Handler { return s.WithGroup(name) })
}

func (h *FanoutHandler) derive(fn func(slog.Handler) slog.Handler) *FanoutHandler {
	next := &FanoutHandler{sinks: make([]slog.Handler, len(h.sinks))}
	for i, s := range h.sinks {
		next.sinks[i] = fn(s)
	}
	return next
}
