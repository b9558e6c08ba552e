// Package errors provides structured error types for partynet.
//
// Every failure the pipeline can report carries a machine-readable [Code]
// and a human-readable message naming the record, column or party code
// that triggered it. All codes are fatal: the run aborts without writing
// any output.
//
// # Error Codes
//
//   - DATA_FORMAT: missing column, duplicate respondent ID, non-numeric cell
//   - UNKNOWN_PARTY: party name absent from the color palette
//   - IO_ERROR: input unreadable or output unwritable
//   - INVALID_INPUT: invalid options (format name, encoding, color value)
//   - INTERNAL_ERROR: layout or rendering failure
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDataFormat, "record %s: slot %d: %q is not a party code", id, slot, raw)
//	if errors.Is(err, errors.ErrCodeDataFormat) {
//	    // Handle malformed survey data
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIO, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeDataFormat   Code = "DATA_FORMAT"
	ErrCodeUnknownParty Code = "UNKNOWN_PARTY"
	ErrCodeIO           Code = "IO_ERROR"
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInternal     Code = "INTERNAL_ERROR"
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// ExitCode maps an error to the process exit status used by the CLI.
// Data and palette problems exit with 2 so scripts can tell them apart
// from I/O and internal failures, which exit with 1.
func ExitCode(err error) int {
	switch GetCode(err) {
	case "":
		if err == nil {
			return 0
		}
		return 1
	case ErrCodeDataFormat, ErrCodeUnknownParty, ErrCodeInvalidInput:
		return 2
	default:
		return 1
	}
}
