package logging

import (
	"context"
	"errors"
	"log/slog"
)

// MultiHandler tees records to several handlers, e.g. the console and a
// --log-file. Each handler applies its own level.
type MultiHandler struct {
	handlers []slog.Handler
}

// NewMultiHandler returns a handler writing to every one of handlers.
func NewMultiHandler(handlers ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: handlers}
}

// Enabled is true when any handler accepts level.
func (h *MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, sub := range h.handlers {
		if sub.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle passes a clone of r to each handler that accepts its level. All
// handlers run even if one fails; the failures are joined.
func (h *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, sub := range h.handlers {
		if !sub.Enabled(ctx, r.Level) {
			continue
		}
		if err := sub.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (h *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h.derive(func(sub slog.Handler) slog.Handler { return sub.WithAttrs(attrs) })
}

func (h *MultiHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return h.derive(func(sub slog.Handler) slog.Handler { return sub.WithGroup(name) })
}

func (h *MultiHandler) derive(fn func(slog.Handler) slog.Handler) *MultiHandler {
	out := make([]slog.Handler, len(h.handlers))
	for i, sub := range h.handlers {
		out[i] = fn(sub)
	}
	return &MultiHandler{handlers: out}
}
