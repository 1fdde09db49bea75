// Package errors provides structured error types for the tutte application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, TUI and HTTP adapter
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (rejected requests)
//   - UNKNOWN_* / NOT_FOUND: References to things that do not exist
//   - DEGENERATE_*: Geometry that was recovered from locally
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidVertexCount, "need at least 3 vertices, got %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidVertexCount) {
//	    // Reject the single request, nothing else is affected
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput       Code = "INVALID_INPUT"
	ErrCodeInvalidVertexCount Code = "INVALID_VERTEX_COUNT"
	ErrCodeInvalidConfig      Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat      Code = "INVALID_FORMAT"

	// Reference errors
	ErrCodeUnknownVertex Code = "UNKNOWN_VERTEX"
	ErrCodeNotFound      Code = "NOT_FOUND"

	// Recovered geometry problems
	ErrCodeDegenerateGeometry Code = "DEGENERATE_GEOMETRY"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the status the HTTP adapter responds with.
// Errors without a code map to 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidVertexCount, ErrCodeInvalidConfig, ErrCodeInvalidFormat:
		return 400
	case ErrCodeUnknownVertex, ErrCodeNotFound:
		return 404
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
