package logger

import (
	"context"
	"errors"
	"log/slog"
)

// FanoutHandler dispatches each record to every underlying handler.
// Records are cloned per handler to preserve slog.Handler semantics.
type FanoutHandler struct {
	handlers []slog.Handler
}

// NewFanoutHandler creates a FanoutHandler. Nil handlers are skipped.
func NewFanoutHandler(handlers ...slog.Handler) *FanoutHandler {
	kept := make([]slog.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			kept = append(kept, h)
		}
	}
	return &FanoutHandler{handlers: kept}
}

// Enabled reports whether any underlying handler is enabled for the level.
func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle dispatches the record to all enabled handlers.
func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if !handler.Enabled(ctx, r.Level) {
			continue
		}
		if err := handler.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// WithAttrs returns a new FanoutHandler with the attributes applied to all handlers.
func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		next = append(next, handler.WithAttrs(attrs))
	}
	return &FanoutHandler{handlers: next}
}

// WithGroup returns a new FanoutHandler with the group applied to all handlers.
func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		next = append(next, handler.WithGroup(name))
	}
	return &FanoutHandler{handlers: next}
}
