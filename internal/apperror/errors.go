// Package apperror provides domain-specific error types for the card
// designer. These errors carry an HTTP status code and a user-safe message.
// The Echo error handler maps them to appropriate HTTP responses
// automatically.
//
// NEVER return raw renderer or infrastructure errors to the client. Always
// wrap them in an apperror type or return a generic internal error.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base error type for all domain errors. It carries an
// HTTP status code, a machine-readable error type, and a human-readable
// message safe to show to the client.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 500).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "validation_error").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Fields maps form field names to messages for validation failures.
	Fields map[string]string `json:"fields,omitempty"`

	// Internal holds the underlying error for logging and errors.Is.
	// Never exposed to client.
	Internal error `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (internal: %v)", e.Type, e.Message, e.Internal)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *AppError) Unwrap() error {
	return e.Internal
}

// --- Constructors for common error types ---

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Type:    "not_found",
		Message: message,
	}
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Type:    "bad_request",
		Message: message,
	}
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return &AppError{
		Code:     http.StatusInternalServerError,
		Type:     "internal_error",
		Message:  "An unexpected error occurred. Please try again.",
		Internal: err,
	}
}

// NewValidation creates a 422 Unprocessable Entity error for validation failures.
func NewValidation(message string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Type:    "validation_error",
		Message: message,
	}
}

// NewValidationCause is NewValidation keeping the domain error that caused
// it, so callers can still match it with errors.Is.
func NewValidationCause(message string, cause error) *AppError {
	e := NewValidation(message)
	e.Internal = cause
	return e
}

// NewFieldValidation creates a 422 error carrying per-field messages.
func NewFieldValidation(message string, fields map[string]string) *AppError {
	e := NewValidation(message)
	e.Fields = fields
	return e
}

// GenericMessage is shown for errors that carry no client-safe message.
const GenericMessage = "An unexpected error occurred."

// SafeMessage returns the Message of the first AppError in err's chain, or
// GenericMessage when there is none.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return GenericMessage
}

// SafeCode returns the status of the first AppError in err's chain, or 500.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
