// internal/app/system/apperr/apperr.go

// Package apperr defines the error kinds shared by all workflow
// operations and their mapping to HTTP status codes.
//
// Store packages return their own sentinel errors; features translate
// those into an *Error with the right Kind at the workflow boundary so
// callers always receive a structured, distinguishable result.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for callers.
type Kind int

const (
	// NotFound: event, registration, or department does not exist.
	NotFound Kind = iota
	// NotAuthorized: role or ownership mismatch.
	NotAuthorized
	// ValidationFailed: team size, malformed input.
	ValidationFailed
	// Conflict: duplicate registration, duplicate roll number,
	// duplicate department+event record.
	Conflict
	// InvalidStateTransition: starting outside the window, marking
	// attendance before start, disallowed payment transition.
	InvalidStateTransition
	// DependencyFailure: a derived-data step failed after the primary
	// write committed. The primary result stands; the failure is
	// reported alongside it.
	DependencyFailure
	// Internal: anything else (database errors and the like).
	Internal
)

// Error carries a kind and a caller-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New constructs an Error with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error that preserves the underlying cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, defaulting to Internal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}

// HTTPStatus maps an error kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case NotFound:
		return http.StatusNotFound
	case NotAuthorized:
		return http.StatusForbidden
	case ValidationFailed:
		return http.StatusBadRequest
	case Conflict:
		return http.StatusConflict
	case InvalidStateTransition:
		return http.StatusUnprocessableEntity
	case DependencyFailure:
		// Reported alongside a committed primary result; callers that
		// reach this mapping directly get a server error.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
