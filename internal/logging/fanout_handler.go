package logging

import (
	"context"
	"log/slog"
)

// teeHandler sends each record to every branch that accepts its level. Each
// branch keeps its own threshold, so the log file can record more than a
// quiet terminal shows.
type teeHandler []slog.Handler

func newTeeHandler(branches ...slog.Handler) slog.Handler {
	var live teeHandler
	for _, b := range branches {
		if b != nil {
			live = append(live, b)
		}
	}
	switch len(live) {
	case 0:
		return discardHandler{}
	case 1:
		return live[0]
	}
	return live
}

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, b := range t {
		if b.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, record slog.Record) error {
	var firstErr error
	for _, b := range t {
		if !b.Enabled(ctx, record.Level) {
			continue
		}
		if err := b.Handle(ctx, record.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return t.each(func(b slog.Handler) slog.Handler { return b.WithAttrs(attrs) })
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	return t.each(func(b slog.Handler) slog.Handler { return b.WithGroup(name) })
}

func (t teeHandler) each(fn func(slog.Handler) slog.Handler) teeHandler {
	next := make(teeHandler, len(t))
	for i, b := range t {
		next[i] = fn(b)
	}
	return next
}
