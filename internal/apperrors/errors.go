// Package apperrors defines the error taxonomy shared by the services and the HTTP layer.
package apperrors

import (
	"errors"
	"net/http"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Error is an application error carrying the HTTP status it maps to, a stable
// code, a user-facing message and optional details.
type Error struct {
	httpCode int
	code     string
	message  string
	details  []string
	cause    error
}

// New creates a new application error.
func New(httpCode int, code, message string) *Error {
	return &Error{
		httpCode: httpCode,
		code:     code,
		message:  message,
	}
}

// Error implements the error interface. The cause is included so that logs keep
// the full chain; clients only ever see Message and Details.
func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	if len(e.details) > 0 {
		return e.message + ": " + strings.Join(e.details, "; ")
	}
	return e.message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.code == e.code
}

// HTTPCode returns the HTTP status code.
func (e *Error) HTTPCode() int {
	return e.httpCode
}

// Code returns the business error code.
func (e *Error) Code() string {
	return e.code
}

// Message returns the user-facing message.
func (e *Error) Message() string {
	return e.message
}

// Details returns the detail lines, e.g. the individual validation failures.
func (e *Error) Details() []string {
	return e.details
}

// WithDetails returns a copy of e carrying the given details.
func (e *Error) WithDetails(details ...string) *Error {
	cp := *e
	cp.details = append([]string(nil), details...)
	return &cp
}

// WithMessage returns a copy of e with a different message.
func (e *Error) WithMessage(message string) *Error {
	cp := *e
	cp.message = message
	return &cp
}

// Wrap returns a copy of e recording cause, annotated with a stack trace.
func (e *Error) Wrap(cause error) *Error {
	cp := *e
	cp.cause = pkgerrors.WithStack(cause)
	return &cp
}

var (
	ErrValidation = New(http.StatusBadRequest, "VALIDATION_FAILED", "invalid data")

	ErrNotFound = New(http.StatusNotFound, "NOT_FOUND", "resource not found")

	// ErrNoMatch is returned by searches that ran fine but matched nothing.
	ErrNoMatch = New(http.StatusNotFound, "NO_MATCH", "no results matched the search")

	ErrInvalidReferenceKind = New(http.StatusBadRequest, "INVALID_REFERENCE_KIND", "invalid product type")

	ErrDuplicateEmail = New(http.StatusConflict, "DUPLICATE_EMAIL", "email is already registered")

	ErrInvalidCredentials = New(http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")

	ErrAccountDisabled = New(http.StatusForbidden, "ACCOUNT_DISABLED", "account is disabled")

	ErrInvalidToken = New(http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")

	ErrUnauthorized = New(http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")

	ErrForbidden = New(http.StatusForbidden, "FORBIDDEN", "access denied")

	// ErrStore hides document store failures from clients.
	ErrStore = New(http.StatusInternalServerError, "STORE_FAILURE", "internal server error")

	ErrInternal = New(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
)

// From extracts the *Error from err's chain. Anything else becomes ErrInternal
// wrapping err.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrInternal.Wrap(err)
}
