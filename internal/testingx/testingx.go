package testingx

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/eggybyte-technology/nest-combo/internal/errors"
	"github.com/eggybyte-technology/nest-combo/internal/expander"
	"github.com/eggybyte-technology/nest-combo/internal/log"
)

// MockLogger is a mock logger for testing.
type MockLogger struct {
	t       *testing.T
	mu      *sync.Mutex
	entries *[]LogEntry
	fields  []any
}

// LogEntry represents a single log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// Field returns the value logged under key, or nil.
func (e LogEntry) Field(key string) any {
	for i := 0; i+1 < len(e.Fields); i += 2 {
		if fmt.Sprint(e.Fields[i]) == key {
			return e.Fields[i+1]
		}
	}
	return nil
}

// NewMockLogger creates a new mock logger.
func NewMockLogger(t *testing.T) *MockLogger {
	entries := make([]LogEntry, 0)
	return &MockLogger{
		t:       t,
		mu:      &sync.Mutex{},
		entries: &entries,
	}
}

// With returns a logger sharing this logger's entries with extra fields attached.
func (m *MockLogger) With(kv ...any) log.Logger {
	fields := append(append([]any{}, m.fields...), flatten(kv)...)
	return &MockLogger{t: m.t, mu: m.mu, entries: m.entries, fields: fields}
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, kv ...any) {
	m.log("DEBUG", msg, nil, kv)
}

// Info logs an info message.
func (m *MockLogger) Info(msg string, kv ...any) {
	m.log("INFO", msg, nil, kv)
}

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, kv ...any) {
	m.log("WARN", msg, nil, kv)
}

// Error logs an error message.
func (m *MockLogger) Error(err error, msg string, kv ...any) {
	m.log("ERROR", msg, err, kv)
}

func (m *MockLogger) log(level, msg string, err error, kv []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fields := append(append([]any{}, m.fields...), flatten(kv)...)
	*m.entries = append(*m.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  fields,
		Error:   err,
	})
}

// Entries returns all log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]LogEntry, len(*m.entries))
	copy(entries, *m.entries)
	return entries
}

// EntriesAt returns the entries logged at level.
func (m *MockLogger) EntriesAt(level string) []LogEntry {
	var out []LogEntry
	for _, e := range m.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// AssertLogged asserts that a message was logged at level.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == msg {
			return
		}
	}
	m.t.Errorf("Expected log message not found: level=%s msg=%q", level, msg)
}

// Clear clears all log entries.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	*m.entries = (*m.entries)[:0]
}

// flatten expands pairs built with log.Str and friends.
func flatten(kv []any) []any {
	out := make([]any, 0, len(kv))
	for _, item := range kv {
		if pair, ok := item.([]any); ok && len(pair) == 2 {
			out = append(out, pair[0], pair[1])
			continue
		}
		out = append(out, item)
	}
	return out
}

// RecordingInvoker records every instruction it receives instead of running nest.
type RecordingInvoker struct {
	mu       sync.Mutex
	calls    []expander.Instruction
	failures map[string]error
}

// NewRecordingInvoker creates an invoker that succeeds for every instruction.
func NewRecordingInvoker() *RecordingInvoker {
	return &RecordingInvoker{failures: make(map[string]error)}
}

// FailOn makes the first instruction targeting targetPath return err.
func (r *RecordingInvoker) FailOn(targetPath string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[targetPath] = err
}

// Invoke records the instruction and returns the configured failure, if any.
func (r *RecordingInvoker) Invoke(ctx context.Context, in expander.Instruction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	r.calls = append(r.calls, in)
	if err, ok := r.failures[in.TargetPath]; ok {
		delete(r.failures, in.TargetPath)
		return err
	}
	return nil
}

// Calls returns the recorded instructions in call order.
func (r *RecordingInvoker) Calls() []expander.Instruction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]expander.Instruction, len(r.calls))
	copy(out, r.calls)
	return out
}

// Trace renders the recorded calls as "action target" lines.
func (r *RecordingInvoker) Trace() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = strings.TrimSpace(string(c.Action) + " " + c.TargetPath)
	}
	return out
}

// AssertError asserts that an error has the expected code.
func AssertError(t *testing.T, err error, expectedCode errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", expectedCode)
	}

	code := errors.CodeOf(err)
	if code != expectedCode {
		t.Errorf("Expected error code %s, got %s (%v)", expectedCode, code, err)
	}
}

// AssertNoError asserts that no error occurred.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}
