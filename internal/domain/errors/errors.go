// Package errors defines the application-level error taxonomy.
// Messages are deliberately generic where revealing the cause would let a
// caller probe for account or resource existence.
package errors

import (
	"net/http"

	"taskbox/internal/errors"
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
	// ErrInvalidCredentials covers both "unknown identifier" and "wrong
	// password". One message for both, so login failures cannot be used to
	// enumerate accounts.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_FAILURE",
		"invalid username or password",
		"",
	)

	// ErrAuthRequired is returned when a protected operation is attempted
	// without a resolved identity.
	ErrAuthRequired = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_REQUIRED",
		"not authenticated",
		"",
	)

	// ErrTokenInvalid covers malformed encoding, signature mismatch, expiry,
	// and claims that match no live account record. One message for all
	// causes; distinguishing them would leak which accounts exist to anyone
	// holding the signing secret.
	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"token invalid or expired",
		"",
	)

	// ErrMalformedAuthHeader rejects an Authorization header without the
	// "Bearer " scheme or with an empty token. Distinct from a missing
	// header, which may be permitted anonymous access.
	ErrMalformedAuthHeader = NewBaseError(
		http.StatusUnauthorized,
		"AUTH_HEADER_MALFORMED",
		"authorization header in invalid format",
		"",
	)

	// ErrTodoNotFound stands in for both "no such todo" and "todo owned by
	// someone else". The two outcomes must stay observably identical.
	ErrTodoNotFound = NewBaseError(
		http.StatusNotFound,
		"TODO_NOT_FOUND",
		"todo does not exist",
		"",
	)

	// ErrConflict reports a uniqueness violation on registration without
	// naming the colliding field.
	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"could not create the account, maybe try a different username",
		"",
	)

	// ErrValidationFailed may carry specific detail: malformed input leaks
	// no account information.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"invalid input",
		"",
	)

	// ErrStoreUnavailable signals that the session store or database is
	// unreachable. Never downgraded to "unauthenticated".
	ErrStoreUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORE_UNAVAILABLE",
		"a backing store is unavailable",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
