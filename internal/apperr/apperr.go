// Package apperr defines the failure kinds shared by the domain packages and
// the HTTP error translator.
package apperr

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrNotFound marks a lookup that matched no row.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write rejected by a uniqueness constraint.
	ErrConflict = errors.New("already exists")
)

// ValidationError carries every violated rule of a rejected payload.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Violations, "; ")
}

// NewValidationError returns nil when there are no violations.
func NewValidationError(violations []string) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// Error is a failure with an explicit HTTP status.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// BadRequest wraps err as a client error.
func BadRequest(message string, err error) error {
	return &Error{Status: http.StatusBadRequest, Message: message, Err: err}
}

// Status maps err to the HTTP status it should be reported with.
func Status(err error) int {
	var validationErr *ValidationError
	var statusErr *Error
	var maxBytesErr *http.MaxBytesError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &statusErr):
		return statusErr.Status
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
