// Package logx provides the slog-based implementation of log.Logger.
//
// Overview:
//   - Responsibility: logfmt output with sorted fields and an optionally colorized level
//   - Key Types: Logger implementation, Option for configuration
//   - Concurrency Model: All loggers are safe for concurrent use
//   - Error Semantics: No errors returned; write failures are ignored
//   - Performance Notes: One buffered write per record
//
// Usage:
//
//	logger := logx.New(logx.WithLevel(slog.LevelDebug), logx.WithColor(true))
//	logger.Info("generating resource", "action", "module", "target", "core/user")
package logx

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eggybyte-technology/nest-combo/internal/log"
	"github.com/eggybyte-technology/nest-combo/internal/logx/internal"
)

// Options configures the logger behavior.
type Options struct {
	Level            slog.Level // Minimum log level
	Color            bool       // Enable colorization for level field only
	Writer           io.Writer  // Output writer (default: os.Stderr)
	DisableTimestamp bool       // Disable timestamp in output
}

// Option configures logger behavior.
type Option func(*Options)

// Logger implements log.Logger using slog.
type Logger struct {
	handler *internal.Handler
	attrs   []slog.Attr
}

// New creates a new Logger with the given options.
func New(opts ...Option) log.Logger {
	options := Options{
		Level:            slog.LevelInfo,
		Writer:           os.Stderr,
		DisableTimestamp: true,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Writer == nil {
		options.Writer = os.Stderr
	}

	handler := internal.NewHandler(internal.Options{
		Level:            options.Level,
		Color:            options.Color,
		DisableTimestamp: options.DisableTimestamp,
	}, options.Writer)

	return &Logger{handler: handler}
}

// WithLevel sets the minimum log level.
func WithLevel(level slog.Level) Option {
	return func(o *Options) {
		o.Level = level
	}
}

// WithColor enables colorization for the level field only.
func WithColor(enabled bool) Option {
	return func(o *Options) {
		o.Color = enabled
	}
}

// WithWriter sets the output writer.
func WithWriter(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// WithTimestamp enables the time field.
func WithTimestamp(enabled bool) Option {
	return func(o *Options) {
		o.DisableTimestamp = !enabled
	}
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// With returns a new Logger with the given key-value pairs attached.
func (l *Logger) With(kv ...any) log.Logger {
	newAttrs := append([]slog.Attr{}, l.attrs...)
	newAttrs = append(newAttrs, internal.KVToAttrs(kv)...)

	return &Logger{
		handler: l.handler,
		attrs:   newAttrs,
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string, kv ...any) {
	l.log(slog.LevelDebug, msg, internal.KVToAttrs(kv))
}

// Info logs an informational message.
func (l *Logger) Info(msg string, kv ...any) {
	l.log(slog.LevelInfo, msg, internal.KVToAttrs(kv))
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string, kv ...any) {
	l.log(slog.LevelWarn, msg, internal.KVToAttrs(kv))
}

// Error logs an error message.
func (l *Logger) Error(err error, msg string, kv ...any) {
	attrs := internal.KVToAttrs(kv)
	if err != nil {
		attrs = append([]slog.Attr{slog.Any("error", err)}, attrs...)
	}
	l.log(slog.LevelError, msg, attrs)
}

func (l *Logger) log(level slog.Level, msg string, attrs []slog.Attr) {
	allAttrs := append([]slog.Attr{}, l.attrs...)
	allAttrs = append(allAttrs, attrs...)

	l.handler.LogRecord(level, msg, allAttrs)
}
