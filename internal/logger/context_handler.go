package logger

import (
	"context"
	"log/slog"

	"github.com/vasptech/vaspx-actions/internal/ctxutil"
)

// ContextHandler is a slog.Handler that copies tracing values (sender_id,
// action, request_id) from the context onto each record before delegating
// to the wrapped handler.
type ContextHandler struct {
	handler slog.Handler
}

// NewContextHandler creates a new ContextHandler that wraps the provided handler.
func NewContextHandler(handler slog.Handler) *ContextHandler {
	return &ContextHandler{handler: handler}
}

// Enabled delegates to the wrapped handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle adds context values as attributes. Empty values are skipped.
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if senderID := ctxutil.GetSenderID(ctx); senderID != "" {
		r.AddAttrs(slog.String("sender_id", senderID))
	}
	if action := ctxutil.GetAction(ctx); action != "" {
		r.AddAttrs(slog.String("action", action))
	}
	if requestID, ok := ctxutil.GetRequestID(ctx); ok && requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	return h.handler.Handle(ctx, r)
}

// WithAttrs returns a new ContextHandler whose attributes consist of
// both the receiver's attributes and the arguments.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs)}
}

// WithGroup returns a new ContextHandler with the given group name prepended
// to the current group name.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name)}
}
