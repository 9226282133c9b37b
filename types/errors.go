package types

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a TaskError for programmatic handling.
type ErrorCode string

const (
	// CodeValidation covers empty titles, malformed import payloads and
	// any other input that fails validation.
	CodeValidation ErrorCode = "validation"
	// CodeNotFound is returned when a 1-based position does not resolve
	// to a task in the current list.
	CodeNotFound ErrorCode = "not_found"
	// CodeIO covers file read/write/permission failures.
	CodeIO ErrorCode = "io"
	// CodeInvalidState is returned for disallowed transitions, e.g.
	// completing a task that is already completed.
	CodeInvalidState ErrorCode = "invalid_state"
)

// TaskError provides structured error information for store and model
// operations. The command layer decides how errors are presented; the
// core only classifies and wraps them.
type TaskError struct {
	Code    ErrorCode
	Message string
	Err     error // underlying cause, may be nil
}

func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a TaskError with CodeValidation.
func NewValidationError(message string, cause error) *TaskError {
	return &TaskError{Code: CodeValidation, Message: message, Err: cause}
}

// NewNotFoundError creates a TaskError with CodeNotFound.
func NewNotFoundError(message string) *TaskError {
	return &TaskError{Code: CodeNotFound, Message: message}
}

// NewIOError creates a TaskError with CodeIO wrapping the underlying
// filesystem error.
func NewIOError(message string, cause error) *TaskError {
	return &TaskError{Code: CodeIO, Message: message, Err: cause}
}

// NewInvalidStateError creates a TaskError with CodeInvalidState.
func NewInvalidStateError(message string) *TaskError {
	return &TaskError{Code: CodeInvalidState, Message: message}
}

// HasCode reports whether err is (or wraps) a TaskError with the given
// code.
func HasCode(err error, code ErrorCode) bool {
	var te *TaskError
	if errors.As(err, &te) {
		return te.Code == code
	}
	return false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return HasCode(err, CodeValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return HasCode(err, CodeNotFound) }

// IsIO reports whether err is an I/O error.
func IsIO(err error) bool { return HasCode(err, CodeIO) }

// IsInvalidState reports whether err is an invalid-state error.
func IsInvalidState(err error) bool { return HasCode(err, CodeInvalidState) }
