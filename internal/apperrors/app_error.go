package apperrors

import "fmt"

// AppError carries an HTTP-like status code alongside a message and an optional cause.
// Repositories wrap low-level driver failures in an AppError so handlers can map them
// without inspecting driver types.
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

// Unwrap allows errors.Is / errors.As to reach the underlying cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError builds an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that matches ErrNotFound under errors.Is.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a 400 AppError that matches ErrValidation under errors.Is.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// NewConflictError builds a 409 AppError that matches ErrConflict under errors.Is.
func NewConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message, Err: ErrConflict}
}
