package logging

import (
	"context"
	"log/slog"
	"time"
)

const (
	// FieldComponent names the package that emitted a record.
	FieldComponent = "component"
	// FieldRunID correlates a `run` invocation with the editor processes it spawns.
	FieldRunID = "run_id"
)

// Attribute shorthands so call sites read logging.String(...) throughout.
func String(key, value string) slog.Attr { return slog.String(key, value) }
func Int(key string, value int) slog.Attr { return slog.Int(key, value) }
func Duration(key string, d time.Duration) slog.Attr { return slog.Duration(key, d) }
func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error renders err under the "error" key; nil errors are logged as "<nil>".
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// NewNop returns a logger that drops everything.
func NewNop() *slog.Logger {
	return slog.New(discardHandler{})
}

// NewComponentLogger tags logger with component. A nil logger yields a no-op.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler { return d }
func (d discardHandler) WithGroup(string) slog.Handler { return d }
