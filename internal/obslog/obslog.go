// Package obslog provides the structured logging used by the facade,
// the HTTP transport and the heuristicd command; the graph store,
// routing and stability packages do not log. It wraps
// the standard log/slog package, the way pkg/logging wraps it in the
// retrieved AleutianLocal tree: a small Logger with level/format
// selection and a With helper for component-scoped child loggers.
package obslog

import (
	"log/slog"
	"os"
)

// Level mirrors slog's four levels without exposing slog in callers'
// import lists.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) toSlog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config selects the minimum level and output format. The zero value is
// Debug level (LevelDebug is the zero Level), text format, writing to
// stderr.
type Config struct {
	Level Level
	JSON  bool
}

// Logger is a component-scoped structured logger. The zero value is not
// usable; construct with New or Default.
type Logger struct {
	slog *slog.Logger
}

// New builds a Logger writing to stderr per cfg.
func New(cfg Config) *Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level.toSlog()}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return &Logger{slog: slog.New(handler)}
}

// Default returns an Info-level, text-format Logger with no component
// attribute set.
func Default() *Logger {
	return New(Config{Level: LevelInfo})
}

// With returns a child Logger tagging every subsequent record with
// "component", plus any extra key-value attributes.
func (l *Logger) With(component string, args ...any) *Logger {
	all := append([]any{"component", component}, args...)

	return &Logger{slog: l.slog.With(all...)}
}

func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.slog.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.slog.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }

// Slog exposes the underlying slog.Logger for call sites that need
// slog-specific features (LogAttrs, groups).
func (l *Logger) Slog() *slog.Logger { return l.slog }
