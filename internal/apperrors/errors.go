package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrForbidden indicates that the acting user is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates a unique-constraint race that is not treated as idempotent.
var ErrConflict = errors.New("conflict")

// ErrInvalidOperation indicates a structurally disallowed state transition,
// e.g. removing the workspace owner from the member list.
var ErrInvalidOperation = errors.New("invalid operation")

// ErrAlreadyResolved indicates an invitation that was already accepted or declined.
var ErrAlreadyResolved = errors.New("invitation already resolved")

// ErrExpired indicates an invitation past its expiry, encountered at accept/decline time.
var ErrExpired = errors.New("invitation expired")

// AppError carries an HTTP-ish status code alongside the wrapped cause.
// Repositories use it to surface storage failures without leaking driver errors.
type AppError struct {
	Code    int
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

// NewAppError creates a generic application error with a status code.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError wrapping ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewConflictError creates an AppError wrapping ErrConflict.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}

// NewValidationFailedError creates an AppError wrapping ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewBadRequestError creates a 400 AppError.
func NewBadRequestError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewUnauthorizedError creates a 401 AppError wrapping ErrUnauthorized.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: 401, Message: message, Err: ErrUnauthorized}
}

// NewInternalServerError creates a 500 AppError.
func NewInternalServerError(message string) *AppError {
	return &AppError{Code: 500, Message: message}
}
