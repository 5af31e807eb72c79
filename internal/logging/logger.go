package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
)

// LevelTrace sits below slog.LevelDebug for per-record dumps.
const LevelTrace = slog.Level(-8)

// Formats accepted by Options.Format.
const (
	FormatAuto    = "auto"
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options describes logger construction parameters.
type Options struct {
	// Level is a level name (trace, debug, info, warn, error). Ignored when
	// Verbosity is non-negative.
	Level string
	// Verbosity is the -v count; negative means "use Level".
	Verbosity int
	// Format is auto, console or json. Auto picks console on a terminal.
	Format string
	// Output defaults to os.Stderr.
	Output io.Writer
	// FilePath additionally appends JSON records to this file when set. The
	// file records info and above regardless of Verbosity.
	FilePath string
	// RunID is attached to every record as run_id when set.
	RunID string
}

// New constructs a slog logger using the provided options. The returned close
// func releases the log file opened for FilePath; call it once the logger is
// no longer used. It is a no-op when no file was opened.
func New(opts Options) (*slog.Logger, func() error, error) {
	level := parseLevel(opts.Level)
	if opts.Verbosity >= 0 {
		level = LevelForVerbosity(opts.Verbosity)
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	output := opts.Output
	if output == nil {
		output = os.Stderr
	}
	addSource := level <= slog.LevelDebug

	format, err := resolveFormat(opts.Format, output)
	if err != nil {
		return nil, nil, err
	}

	var handler slog.Handler
	switch format {
	case FormatJSON:
		handler = newJSONHandler(output, levelVar, addSource)
	default:
		handler = newPrettyHandler(output, levelVar, addSource)
	}

	closeFn := func() error { return nil }
	if path := strings.TrimSpace(opts.FilePath); path != "" {
		file, err := openLogFile(path)
		if err != nil {
			return nil, nil, err
		}
		closeFn = file.Close
		handler = newTeeHandler(handler, newJSONHandler(file, fileLevel(level), true))
	}

	if opts.RunID != "" {
		handler = newRunIDHandler(handler, opts.RunID)
	}
	return slog.New(handler), closeFn, nil
}

// LevelForVerbosity maps the -v count onto level tiers:
// 0 warn (quiet), 1 info, 2 debug, 3+ trace.
func LevelForVerbosity(count int) slog.Level {
	switch {
	case count <= 0:
		return slog.LevelWarn
	case count == 1:
		return slog.LevelInfo
	case count == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ValidFormat reports whether value is an accepted Options.Format.
func ValidFormat(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", FormatAuto, FormatConsole, FormatJSON:
		return true
	default:
		return false
	}
}

func resolveFormat(value string, output io.Writer) (string, error) {
	format := strings.ToLower(strings.TrimSpace(value))
	switch format {
	case FormatConsole, FormatJSON:
		return format, nil
	case "", FormatAuto:
		if isTerminal(output) {
			return FormatConsole, nil
		}
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("log format: unsupported value %q", value)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

// fileLevel keeps at least info records in the log file even when the
// terminal is quiet.
func fileLevel(level slog.Level) slog.Level {
	return min(level, slog.LevelInfo)
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	case level >= slog.LevelDebug:
		return "DEBUG"
	default:
		return "TRACE"
	}
}
