// Package apperr classifies request failures so handlers can map them to HTTP statuses in one place.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindStore Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindAuth:
		return "auth"
	default:
		return "store"
	}
}

// Status returns the HTTP status code for the kind.
func (k Kind) Status() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a user-facing message and, for store failures, the underlying cause.
type Error struct {
	Kind    Kind
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

// Validation reports input the client must fix (400).
func Validation(message string) error { return &Error{Kind: KindValidation, Message: message} }

// Conflict reports a clash with an existing record (409).
func Conflict(message string) error { return &Error{Kind: KindConflict, Message: message} }

// NotFound reports a missing record (404).
func NotFound(message string) error { return &Error{Kind: KindNotFound, Message: message} }

// Auth reports failed credentials (401).
func Auth(message string) error { return &Error{Kind: KindAuth, Message: message} }

// Store wraps a persistence failure (500). err is kept for logs and the envelope detail.
func Store(message string, err error) error {
	return &Error{Kind: KindStore, Message: message, Err: err}
}

// KindOf reports the kind of err. Unclassified errors are store failures.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindStore
}
