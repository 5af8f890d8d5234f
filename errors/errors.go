// Package errors provides the application error type used across the auth
// core: a machine-readable code, a human message, and an HTTP status mapping
// resolved at the transport boundary.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode
	// Message is a human-readable error message.
	Message string
	// Fields holds per-field validation messages ("field: message"). When
	// set, the response envelope carries the list instead of Message.
	Fields []string
	// HTTPStatus is the HTTP status code for this error.
	HTTPStatus int
	// Cause is the underlying error, kept for server-side logging only.
	Cause error
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// MessageValue returns the value for the envelope's message field: the
// field-error list for validation failures, the plain message otherwise.
func (e *AppError) MessageValue() any {
	if len(e.Fields) > 0 {
		return e.Fields
	}
	return e.Message
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// --- Domain error constructors ---

// InvalidCredentials creates the login failure error. The default message is
// identical for unknown accounts and wrong passwords.
func InvalidCredentials(message string) *AppError {
	if message == "" {
		message = "Invalid email or password"
	}
	return &AppError{
		Code: ErrCodeInvalidCredentials, Message: message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// UserAlreadyExists creates a registration conflict error.
func UserAlreadyExists(message string) *AppError {
	if message == "" {
		message = "User already exists"
	}
	return &AppError{
		Code: ErrCodeUserAlreadyExists, Message: message,
		HTTPStatus: http.StatusConflict,
	}
}

// UserNotFound creates an error for a user id that no longer resolves to an
// active row.
func UserNotFound() *AppError {
	return &AppError{
		Code: ErrCodeUserNotFound, Message: "User not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates an error for a malformed or missing auth header.
func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Message: message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenExpired creates an error for a token past its expiry.
func TokenExpired() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "Token has expired",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken creates an error for a token with a bad signature or structure.
func InvalidToken() *AppError {
	return &AppError{
		Code: ErrCodeInvalidToken, Message: "Invalid token",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenKindMismatch creates an error for a token whose kind claim does not
// match the expected kind.
func TokenKindMismatch(expected, received string) *AppError {
	return &AppError{
		Code:       ErrCodeInvalidTokenType,
		Message:    fmt.Sprintf("Expected token type '%s', received '%s'", expected, received),
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Validation creates an error carrying per-field validation messages.
func Validation(fields []string) *AppError {
	return &AppError{
		Code: ErrCodeRequestValidation, Message: "Request validation failed",
		Fields:     fields,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

// Internal creates a generic internal error. The cause is retained for
// server-side logging and never serialized to the caller.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
