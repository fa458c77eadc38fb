package utils

import (
	"context"
	"errors"
	"log/slog"
)

// LogRouter is a slog.Handler that routes each record to every destination
// whose own level admits it. Destinations keep their individual levels, so a
// debug-level file can coexist with an info-level terminal.
type LogRouter struct {
	destinations []slog.Handler
}

func NewLogRouter(destinations ...slog.Handler) *LogRouter {
	return &LogRouter{destinations: destinations}
}

// Enabled reports whether at least one destination would accept the level.
func (r *LogRouter) Enabled(ctx context.Context, level slog.Level) bool {
	for _, dst := range r.destinations {
		if dst.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle delivers the record to every admitting destination. One failing
// destination does not stop delivery to the others; all errors are joined.
func (r *LogRouter) Handle(ctx context.Context, rec slog.Record) error {
	var errs []error
	for _, dst := range r.destinations {
		if !dst.Enabled(ctx, rec.Level) {
			continue
		}
		if err := dst.Handle(ctx, rec.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *LogRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return r.apply(func(dst slog.Handler) slog.Handler { return dst.WithAttrs(attrs) })
}

func (r *LogRouter) WithGroup(name string) slog.Handler {
	return r.apply(func(dst slog.Handler) slog.Handler { return dst.WithGroup(name) })
}

func (r *LogRouter) apply(fn func(slog.Handler) slog.Handler) *LogRouter {
	destinations := make([]slog.Handler, len(r.destinations))
	for i, dst := range r.destinations {
		destinations[i] = fn(dst)
	}
	return NewLogRouter(destinations...)
}

var _ slog.Handler = (*LogRouter)(nil)
