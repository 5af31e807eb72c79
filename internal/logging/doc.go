// Package logging assembles the slog loggers used by beets-edit.
//
// It owns the console and JSON handlers, maps the repeatable -v flag onto
// level tiers (including a TRACE level below debug), and stamps every record
// with the invocation's run id so the nested editor processes spawned during
// `run` can be correlated with their parent. A no-op logger is provided for
// tests and wiring code that cannot fail.
package logging
