// Package errors defines the application error taxonomy and its HTTP
// mapping.
package errors

import (
	"net/http"

	"parcel/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Order-related errors
	ErrOrderNotFound = NewBaseError(
		http.StatusNotFound,
		"ORDER_NOT_FOUND",
		"Delivery order not found",
		"",
	)

	ErrInvalidTransition = NewBaseError(
		http.StatusConflict,
		"INVALID_TRANSITION",
		"The delivery cannot move to that state",
		"",
	)

	ErrOrderAlreadyRated = NewBaseError(
		http.StatusConflict,
		"ORDER_ALREADY_RATED",
		"This delivery has already been rated",
		"",
	)

	ErrInvalidPIN = NewBaseError(
		http.StatusForbidden,
		"INVALID_PIN",
		"Collection PIN does not match",
		"",
	)

	// Scheduling-related errors
	ErrScheduleTooSoon = NewBaseError(
		http.StatusBadRequest,
		"SCHEDULE_TOO_SOON",
		"Scheduled time must be at least 1 hour from now",
		"",
	)

	ErrScheduleTooFar = NewBaseError(
		http.StatusBadRequest,
		"SCHEDULE_TOO_FAR",
		"Scheduled time must be within 7 days",
		"",
	)

	ErrScheduleOutsideHours = NewBaseError(
		http.StatusBadRequest,
		"SCHEDULE_OUTSIDE_HOURS",
		"Scheduled time must fall between 06:00 and 22:00",
		"",
	)

	// Courier/driver-related errors
	ErrCourierNotFound = NewBaseError(
		http.StatusNotFound,
		"COURIER_NOT_FOUND",
		"Courier company not found",
		"",
	)

	ErrCourierInactive = NewBaseError(
		http.StatusConflict,
		"COURIER_INACTIVE",
		"Courier company is not accepting orders",
		"",
	)

	ErrDriverNotFound = NewBaseError(
		http.StatusNotFound,
		"DRIVER_NOT_FOUND",
		"Driver not found",
		"",
	)

	ErrDriverNotApproved = NewBaseError(
		http.StatusForbidden,
		"DRIVER_NOT_APPROVED",
		"Driver account has not been approved",
		"",
	)

	// Account-related errors
	ErrProfileNotFound = NewBaseError(
		http.StatusNotFound,
		"PROFILE_NOT_FOUND",
		"User profile not found",
		"",
	)

	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Email or password is incorrect",
		"",
	)

	ErrRefreshTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID",
		"Invalid or expired refresh token",
		"",
	)

	ErrIDTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"ID_TOKEN_INVALID",
		"Invalid or expired ID token",
		"",
	)

	ErrImageTooLarge = NewBaseError(
		http.StatusBadRequest,
		"IMAGE_TOO_LARGE",
		"Profile image exceeds the allowed size",
		"",
	)

	// Infrastructure errors
	ErrDatabaseExecute = NewBaseError(
		http.StatusInternalServerError,
		"DATABASE_EXECUTE_ERROR",
		"Backend operation failed",
		"",
	)
)

// NewDatabaseExecuteError wraps a backend failure with detail text.
func NewDatabaseExecuteError(err error, message string) error {
	return ErrDatabaseExecute.WithDetails(message).WrapMessage(err.Error())
}
