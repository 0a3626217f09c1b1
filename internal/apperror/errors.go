// Package apperror provides the dashboard's error type. Errors carry an HTTP
// status code and a message that is safe to show in the browser; the Echo
// error handler turns them into responses.
//
// Device and infrastructure failures are wrapped in Internal so they reach
// the log but never the page.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the base error type for all domain errors.
type AppError struct {
	// Code is the HTTP status code (e.g., 404, 400, 502).
	Code int `json:"-"`

	// Type is a machine-readable error classifier (e.g., "not_found").
	Type string `json:"type"`

	// Message is a human-readable description safe for the client.
	Message string `json:"message"`

	// Internal holds the underlying error for logging. Never exposed to client.
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

func newError(code int, typ, message string, internal error) *AppError {
	return &AppError{Code: code, Type: typ, Message: message, Internal: internal}
}

// NewNotFound creates a 404 Not Found error.
func NewNotFound(message string) *AppError {
	return newError(http.StatusNotFound, "not_found", message, nil)
}

// NewBadRequest creates a 400 Bad Request error.
func NewBadRequest(message string) *AppError {
	return newError(http.StatusBadRequest, "bad_request", message, nil)
}

// NewUnauthorized creates a 401 Unauthorized error.
func NewUnauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, "unauthorized", message, nil)
}

// NewValidation creates a 422 error for form validation failures.
func NewValidation(message string) *AppError {
	return newError(http.StatusUnprocessableEntity, "validation_error", message, nil)
}

// NewTooLarge creates a 413 error for oversized uploads.
func NewTooLarge(message string) *AppError {
	return newError(http.StatusRequestEntityTooLarge, "too_large", message, nil)
}

// NewBadGateway creates a 502 error for a device that answered badly or not
// at all. The device error is kept for logging.
func NewBadGateway(message string, err error) *AppError {
	return newError(http.StatusBadGateway, "device_error", message, err)
}

// NewGatewayTimeout creates a 504 error for a device call that ran out of time.
func NewGatewayTimeout(message string, err error) *AppError {
	return newError(http.StatusGatewayTimeout, "device_timeout", message, err)
}

// errMissingContext is the shared internal error for nil precondition checks.
var errMissingContext = errors.New("missing required context")

// NewMissingContext creates a 500 error for handler nil-context guards
// (client session not loaded, dependency not wired).
func NewMissingContext() *AppError {
	return NewInternal(errMissingContext)
}

// NewInternal creates a 500 Internal Server Error. The real error is stored
// in Internal for logging but the client only sees a generic message.
func NewInternal(err error) *AppError {
	return newError(http.StatusInternalServerError, "internal_error",
		"An unexpected error occurred. Please try again.", err)
}

// SafeMessage returns the client-safe message of err, or a generic message
// for anything that is not an AppError.
func SafeMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "an unexpected error occurred"
}

// SafeCode returns the HTTP status code from an AppError, or 500 for
// any other error type.
func SafeCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
