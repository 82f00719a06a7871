// Package errors provides structured, coded errors for the nest-combo CLI.
//
// Overview:
//   - Responsibility: Classify failures so the CLI can report them consistently
//   - Key Types: Code type for error classification, E struct for structured errors
//   - Concurrency Model: All functions are safe for concurrent use
//   - Error Semantics: Compatible with standard library error wrapping
//   - Performance Notes: Minimal allocations
//
// Usage:
//
//	err := errors.New(errors.CodeInvalidArgument, "module name is required")
//	wrapped := errors.Wrap(errors.CodeAborted, "install dependencies", originalErr)
//	code := errors.CodeOf(err)
package errors

import (
	"errors"
	"fmt"
)

// Code represents an error classification code.
type Code string

// Error codes used across the CLI.
const (
	// CodeInvalidArgument marks configuration and command-line errors.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"
	// CodeNotFound marks missing files.
	CodeNotFound Code = "NOT_FOUND"
	// CodeUnavailable marks external binaries that cannot be started.
	CodeUnavailable Code = "UNAVAILABLE"
	// CodeAborted marks external commands that ran and failed.
	CodeAborted Code = "ABORTED"
	// CodeCanceled marks runs interrupted through their context.
	CodeCanceled Code = "CANCELED"
	// CodeInternal marks everything else.
	CodeInternal Code = "INTERNAL"
)

// E represents a structured error with code, operation, message and cause.
type E struct {
	Code Code   // Error classification code
	Op   string // Operation that failed
	Err  error  // Underlying error (may be nil)
	Msg  string // Human-readable message
}

// Error implements the error interface.
// A directly wrapped *E contributes its text without repeating its code.
func (e *E) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.text())
}

func (e *E) text() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Op
	} else if e.Op != "" {
		msg = e.Op + ": " + msg
	}

	if e.Err == nil {
		return msg
	}

	cause := e.Err.Error()
	if inner, ok := e.Err.(*E); ok {
		cause = inner.text()
	}
	if msg == "" {
		return cause
	}
	return msg + ": " + cause
}

// Text returns err's message without the leading code when err is an *E.
// Wrappers that embed a cause's message use it so a code appears only once.
func Text(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*E); ok {
		return e.text()
	}
	return err.Error()
}

// Unwrap returns the underlying error for error unwrapping.
func (e *E) Unwrap() error {
	return e.Err
}

// New creates a new structured error with the given code and message.
func New(code Code, msg string) error {
	return &E{
		Code: code,
		Msg:  msg,
	}
}

// Wrap creates a new structured error wrapping an existing error.
// The operation name identifies the step that failed.
func Wrap(code Code, op string, err error) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// Wrapf creates a new structured error wrapping an existing error with a formatted message.
func Wrapf(code Code, op string, err error, format string, args ...any) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the outermost error code from an error.
// Returns empty string if the error doesn't carry a code.
func CodeOf(err error) Code {
	var e *E
	if err != nil && errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsCode checks if an error has a specific code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
