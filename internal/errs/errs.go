// Package errs defines the error taxonomy shared by every service layer.
// Handlers translate these into HTTP statuses; anything unrecognized is
// treated as an opaque storage/system failure.
package errs

import (
	"errors"
	"fmt"
)

// ConflictError reports a business-rule uniqueness violation. Existing holds
// the record that already owns the contested value so clients can reconcile.
type ConflictError struct {
	Message  string
	Existing any
}

func (e *ConflictError) Error() string { return e.Message }

// NewConflict builds a ConflictError carrying the existing record.
func NewConflict(message string, existing any) *ConflictError {
	return &ConflictError{Message: message, Existing: existing}
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NewNotFound builds a NotFoundError.
func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

// ValidationError reports a malformed request rejected before any side
// effects.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation builds a ValidationError.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// UnauthorizedError reports failed authentication or a forbidden field
// change.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// NewUnauthorized builds an UnauthorizedError.
func NewUnauthorized(message string) *UnauthorizedError {
	return &UnauthorizedError{Message: message}
}

// UnsupportedMediaError reports an upload of a disallowed file type.
type UnsupportedMediaError struct {
	Message string
}

func (e *UnsupportedMediaError) Error() string { return e.Message }

// NewUnsupportedMedia builds an UnsupportedMediaError.
func NewUnsupportedMedia(message string) *UnsupportedMediaError {
	return &UnsupportedMediaError{Message: message}
}

// ParseError reports malformed tabular input. Line is 1-based and refers to
// the offending line of the uploaded file when known.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed input at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("malformed input: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AsConflict unwraps err into a ConflictError, if it is one.
func AsConflict(err error) (*ConflictError, bool) {
	var ce *ConflictError
	ok := errors.As(err, &ce)
	return ce, ok
}
