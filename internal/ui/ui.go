// Package ui provides unified output formatting for the nest-combo CLI.
//
// Overview:
//   - Responsibility: Progress messages, diagnostics and plain listings
//   - Key Types: OutputLevel, Message
//   - Concurrency Model: Thread-safe output operations
//   - Error Semantics: Errors go to the error stream, everything else to the output stream
//   - Performance Notes: Unbuffered, one write per message
//
// Usage:
//
//	ui.Info("Generating %s for %s", "module", "core/user")
//	ui.Error("%v", err)
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	verbose    bool
	jsonOutput bool
	stdout     io.Writer = os.Stdout
	stderr     io.Writer = os.Stderr
	mu         sync.RWMutex
)

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

// Message represents a structured output message.
//
// Parameters:
//   - Level: Message severity level
//   - Text: Human-readable message content
//   - Data: Optional structured data for JSON output
//   - Timestamp: When the message was created
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug messages.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// Verbose reports whether debug messages are shown.
func Verbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetJSONOutput enables JSON-formatted output.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// SetOutput redirects the output and error streams. Nil keeps the current stream.
//
// Parameters:
//   - out: Stream for everything except errors
//   - errOut: Stream for errors
//
// Concurrency:
//   - Thread-safe
func SetOutput(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
}

// Reset restores the default streams and modes.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose = false
	jsonOutput = false
	stdout = os.Stdout
	stderr = os.Stderr
}

// output writes a message to the appropriate output stream.
func output(level OutputLevel, data any, format string, args ...any) {
	mu.RLock()
	useJSON := jsonOutput
	useVerbose := verbose
	out, errOut := stdout, stderr
	mu.RUnlock()

	// Skip debug messages if not verbose
	if level == LevelDebug && !useVerbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if useJSON {
		message := Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: time.Now(),
		}
		encoder := json.NewEncoder(out)
		if err := encoder.Encode(message); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	var prefix string
	switch level {
	case LevelDebug:
		prefix = "🔍 DEBUG:"
	case LevelInfo:
		prefix = "ℹ️  INFO:"
	case LevelWarning:
		prefix = "⚠️  WARN:"
	case LevelError:
		prefix = "❌ ERROR:"
	case LevelSuccess:
		prefix = "✅ SUCCESS:"
	}

	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

// Debug outputs a debug message, shown only in verbose mode.
func Debug(format string, args ...any) {
	output(LevelDebug, nil, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...any) {
	output(LevelInfo, nil, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...any) {
	output(LevelWarning, nil, format, args...)
}

// Error outputs an error message to the error stream.
func Error(format string, args ...any) {
	output(LevelError, nil, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...any) {
	output(LevelSuccess, nil, format, args...)
}

// Data outputs an informational message carrying structured data.
// The data is only rendered in JSON mode.
func Data(data any, format string, args ...any) {
	output(LevelInfo, data, format, args...)
}

// Step outputs a step indicator with message.
//
// Parameters:
//   - step: Step number
//   - total: Total number of steps
//   - format: Printf-style format string
//   - args: Format arguments
//
// Concurrency:
//   - Thread-safe
func Step(step, total int, format string, args ...any) {
	mu.RLock()
	useJSON := jsonOutput
	out := stdout
	mu.RUnlock()

	if useJSON {
		Info(format, args...)
		return
	}

	text := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "  [%d/%d] %s\n", step, total, text)
}
