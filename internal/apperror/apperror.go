// Package apperror defines the typed errors raised below the HTTP boundary.
// Only the response package turns them into envelopes.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	Internal Kind = iota
	Validation
	Conflict
	Unauthorized
	Forbidden
	NotFound

	// Auth gate kinds. All of them surface as 401.
	MissingHeader
	BadFormat

	// Token service kinds. Collapsed to a single 401 message at the boundary.
	Malformed
	InvalidSignature
	Expired
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case MissingHeader:
		return "missing_header"
	case BadFormat:
		return "bad_format"
	case Malformed:
		return "malformed"
	case InvalidSignature:
		return "invalid_signature"
	case Expired:
		return "expired"
	default:
		return "internal"
	}
}

// Error is the application error type.
type Error struct {
	Kind    Kind
	Message string
	// Fields carries field-level detail for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status for the error kind.
func (e *Error) StatusCode() int {
	switch e.Kind {
	case Validation:
		return http.StatusUnprocessableEntity
	case Conflict:
		return http.StatusConflict
	case Unauthorized, MissingHeader, BadFormat, Malformed, InvalidSignature, Expired:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

func NewConflict(message string, err error) *Error {
	return New(Conflict, message, err)
}

func NewUnauthorized(message string, err error) *Error {
	return New(Unauthorized, message, err)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message, nil)
}

func NewNotFound(message string, err error) *Error {
	return New(NotFound, message, err)
}

func NewInternal(message string, err error) *Error {
	return New(Internal, message, err)
}

// As extracts an *Error from the chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// KindOf returns the kind of err, or Internal for untyped errors.
func KindOf(err error) Kind {
	if appErr, ok := As(err); ok {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == kind
}
