// internal/pkg/apperr/errors.go
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an error into one of the stable categories exposed to
// clients. Every kind maps to exactly one HTTP status so clients can branch
// on the category without matching message strings.
type Kind int

const (
	KindValidation Kind = iota
	KindUnauthorized
	KindConflict
	KindNotFound
	KindStorage
	KindInternal
)

// Error is the application error carried across the service boundary.
type Error struct {
	Kind    Kind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports malformed or out-of-range input.
func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// Unauthorized reports missing or invalid credentials.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Conflict reports a uniqueness or state conflict.
func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NotFound reports that the targeted record does not exist.
func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Storage wraps an underlying persistence failure.
func Storage(err error) *Error {
	return &Error{Kind: KindStorage, Message: fmt.Sprintf("storage error: %v", err), Err: err}
}

// Internal reports an unexpected invariant violation.
func Internal(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg}
}

// FromStorage maps a database error into the taxonomy. Unique constraint
// violations become Conflict, missing records become NotFound, everything
// else is a Storage failure.
func FromStorage(err error) *Error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &Error{Kind: KindConflict, Message: "unique constraint violation", Err: err}
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &Error{Kind: KindNotFound, Message: "record not found", Err: err}
	default:
		return Storage(err)
	}
}

// KindOf returns the kind of err, or KindInternal when err is not an
// application error.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus returns the stable response status for err.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
