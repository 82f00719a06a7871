// Package internal provides internal implementation details for logx.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"
)

// Options configures the handler behavior.
type Options struct {
	Level            slog.Level // Minimum log level
	Color            bool       // Enable colorization for level field only
	DisableTimestamp bool       // Disable timestamp in output
}

// Handler is a slog.Handler that outputs logfmt with sorted fields.
type Handler struct {
	opts   Options
	mu     *sync.Mutex
	writer io.Writer
	attrs  []slog.Attr
	group  string
}

// NewHandler creates a new Handler with the given options.
func NewHandler(opts Options, writer io.Writer) *Handler {
	return &Handler{
		opts:   opts,
		mu:     &sync.Mutex{},
		writer: writer,
	}
}

// handle writes the log record.
func (h *Handler) handle(level slog.Level, msg string, attrs []slog.Attr) {
	if level < h.opts.Level {
		return
	}

	var buf strings.Builder

	if !h.opts.DisableTimestamp {
		buf.WriteString("time=")
		buf.WriteString(time.Now().Format(time.RFC3339))
		buf.WriteString(" ")
	}

	levelStr := LevelString(level)
	buf.WriteString("level=")
	if h.opts.Color {
		buf.WriteString(ColorizeLevel(levelStr))
	} else {
		buf.WriteString(levelStr)
	}

	buf.WriteString(" msg=")
	buf.WriteString(fmt.Sprintf("%q", msg))

	allAttrs := append([]slog.Attr{}, h.attrs...)
	allAttrs = append(allAttrs, attrs...)

	for _, attr := range SortAttrs(allAttrs) {
		key := attr.Key
		if h.group != "" {
			key = h.group + "." + key
		}
		buf.WriteString(" ")
		buf.WriteString(key)
		buf.WriteString("=")
		buf.WriteString(FormatValue(attr.Value))
	}

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	h.writer.Write([]byte(buf.String()))
}

// LogRecord writes a log record (public method for the logx package).
func (h *Handler) LogRecord(level slog.Level, msg string, attrs []slog.Attr) {
	h.handle(level, msg, attrs)
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.opts.Level
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	h.handle(r.Level, r.Message, attrs)
	return nil
}

// WithAttrs returns a new Handler with the given attributes.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := append([]slog.Attr{}, h.attrs...)
	newAttrs = append(newAttrs, attrs...)

	return &Handler{
		opts:   h.opts,
		mu:     h.mu,
		writer: h.writer,
		attrs:  newAttrs,
		group:  h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{
		opts:   h.opts,
		mu:     h.mu,
		writer: h.writer,
		attrs:  h.attrs,
		group:  name,
	}
}

// KVToAttrs converts key-value pairs to a slog.Attr slice.
// Pairs built with log.Str and friends arrive as 2-element []any values.
func KVToAttrs(kv []any) []slog.Attr {
	flat := make([]any, 0, len(kv))
	for _, item := range kv {
		if v, ok := item.([]any); ok && len(v) == 2 {
			flat = append(flat, v[0], v[1])
			continue
		}
		flat = append(flat, item)
	}

	attrs := make([]slog.Attr, 0, len(flat)/2)
	for i := 0; i < len(flat)-1; i += 2 {
		key := fmt.Sprintf("%v", flat[i])
		attrs = append(attrs, slog.Any(key, flat[i+1]))
	}
	return attrs
}

// SortAttrs sorts attributes by key.
func SortAttrs(attrs []slog.Attr) []slog.Attr {
	sorted := make([]slog.Attr, len(attrs))
	copy(sorted, attrs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Key < sorted[j].Key
	})
	return sorted
}

// FormatValue formats a slog.Value for logfmt output.
func FormatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return fmt.Sprintf("%q", v.String())
	case slog.KindInt64:
		return fmt.Sprintf("%d", v.Int64())
	case slog.KindUint64:
		return fmt.Sprintf("%d", v.Uint64())
	case slog.KindBool:
		return fmt.Sprintf("%t", v.Bool())
	case slog.KindDuration:
		return fmt.Sprintf("%d", v.Duration().Milliseconds())
	case slog.KindTime:
		return fmt.Sprintf("%q", v.Time().Format(time.RFC3339))
	default:
		if err, ok := v.Any().(error); ok {
			return fmt.Sprintf("%q", err.Error())
		}
		if ss, ok := v.Any().([]string); ok {
			return fmt.Sprintf("%q", strings.Join(ss, " "))
		}
		return fmt.Sprintf("%q", v.String())
	}
}

// LevelString returns the string representation of a log level.
func LevelString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARN"
	case slog.LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", level)
	}
}

// ColorizeLevel adds ANSI color codes only to the level value.
func ColorizeLevel(level string) string {
	const (
		reset   = "\033[0m"
		red     = "\033[31m"
		yellow  = "\033[33m"
		cyan    = "\033[36m"
		magenta = "\033[35m"
	)

	switch level {
	case "DEBUG":
		return magenta + level + reset
	case "INFO":
		return cyan + level + reset
	case "WARN":
		return yellow + level + reset
	case "ERROR":
		return red + level + reset
	default:
		return level
	}
}
