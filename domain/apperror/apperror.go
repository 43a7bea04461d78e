package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for HTTP mapping and handler logic.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindNotFound     Kind = "not_found"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindConflict     Kind = "conflict"
	KindInternal     Kind = "internal"
)

// AppError carries a classification, a human-readable message safe to return
// to clients, and an optional wrapped cause that never leaves the process.
type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func Validation(message string) *AppError   { return New(KindValidation, message) }
func NotFound(message string) *AppError     { return New(KindNotFound, message) }
func Unauthorized(message string) *AppError { return New(KindUnauthorized, message) }
func Forbidden(message string) *AppError    { return New(KindForbidden, message) }
func Conflict(message string) *AppError     { return New(KindConflict, message) }

func Internal(message string, cause error) *AppError {
	return Wrap(KindInternal, message, cause)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// HTTPStatus maps an error to its response status. Unclassified errors are
// treated as internal so nothing unexpected leaks with a 4xx.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the client-safe message for an error. Internal and
// unclassified errors collapse to a generic message.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Erreur interne du serveur"
}
