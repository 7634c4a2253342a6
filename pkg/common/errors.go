package common

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a domain failure. Handlers map kinds to HTTP status
// codes; callers can branch on them without parsing messages.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindAuthorization ErrorKind = "authorization"
	KindTransient     ErrorKind = "transient"
	KindInternal      ErrorKind = "internal"
)

// AppError is the structured failure returned by every service operation.
// Message is safe to show to API callers; Err keeps the underlying cause
// for logs and never reaches the response body.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func NewAuthorizationError(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

// NewTransientError wraps an unexpected storage failure. The caller may
// retry with backoff; the underlying cause stays out of the response.
func NewTransientError(msg string, err error) *AppError {
	return &AppError{Kind: KindTransient, Message: msg, Err: err}
}

// KindOf returns the kind of err, or KindInternal for anything that is not
// an AppError.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// HTTPStatus maps an error to the status code its kind represents.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the caller-safe message for err. Unclassified
// errors collapse to a generic message so storage detail never leaks.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
