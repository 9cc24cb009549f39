// Package errors provides custom error types for the SpendWise API.
// All service-layer errors should use AppError so clients get consistent
// responses that never leak internal details.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, optional field-level messages
// and an optional internal cause.
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Fields     map[string]string `json:"fields,omitempty"`
	StatusCode int               `json:"-"`
	Internal   error             `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target is an AppError carrying the same code, so copies
// made by Wrap or WithMessage still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Fields:     sentinel.Fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// WithFields creates a new AppError carrying per-field messages.
func WithFields(sentinel *AppError, message string, fields map[string]string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		Fields:     fields,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrEmailTaken   = &AppError{Code: "EMAIL_TAKEN", Message: "User with this email already exists", StatusCode: http.StatusBadRequest}
)

// Budget errors.
var (
	ErrInsufficientBudget = &AppError{Code: "INSUFFICIENT_BUDGET", Message: "Not enough budget for this spending record", StatusCode: http.StatusBadRequest}
	ErrInvalidBudget      = &AppError{Code: "INVALID_BUDGET", Message: "Invalid budget value", StatusCode: http.StatusBadRequest}
)

// Spending errors.
var (
	ErrRecordNotFound    = &AppError{Code: "RECORD_NOT_FOUND", Message: "Spending record not found", StatusCode: http.StatusNotFound}
	ErrNoMatchingRecords = &AppError{Code: "NO_MATCHING_RECORDS", Message: "No spending records found", StatusCode: http.StatusNotFound}
)
