// Package log defines the structured logging interface used across nest-combo.
//
// Overview:
//   - Responsibility: Define a stable logging interface for CLI internals
//   - Key Types: Logger interface with structured key-value logging
//   - Concurrency Model: Logger implementations must be safe for concurrent use
//   - Error Semantics: Error method accepts error as first parameter for structured logging
//   - Performance Notes: Interface designed for zero-allocation key-value pairs
//
// Usage:
//
//	logger.Info("generating resource", log.Str("action", "module"), log.Str("target", "core/user"))
package log

// Logger defines a structured logging interface compatible with slog concepts.
// Implementations must be safe for concurrent use.
type Logger interface {
	// With returns a new Logger with the given key-value pairs attached.
	With(kv ...any) Logger

	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, kv ...any)

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, kv ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, kv ...any)

	// Error logs an error message with the error and optional key-value pairs.
	Error(err error, msg string, kv ...any)
}

// Str creates a string key-value pair for structured logging.
func Str(k, v string) any {
	return []any{k, v}
}

// Int creates an integer key-value pair for structured logging.
func Int(k string, v int) any {
	return []any{k, v}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nop{}
}

type nop struct{}

func (n nop) With(kv ...any) Logger { return n }
func (nop) Debug(msg string, kv ...any) {}
func (nop) Info(msg string, kv ...any) {}
func (nop) Warn(msg string, kv ...any) {}
func (nop) Error(err error, msg string, kv ...any) {}
