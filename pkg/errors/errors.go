package errors

import (
	"fmt"
)

// ErrorType classifies application errors for translation at the HTTP
// boundary.
type ErrorType string

const (
	// ErrorTypeValidation indicates the request input failed schema or
	// range checks. Recoverable per-request.
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeUnavailable indicates a required collaborator (the model)
	// was not initialized at startup.
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"

	// ErrorTypeExternal indicates a failure in an external service call.
	ErrorTypeExternal ErrorType = "EXTERNAL"

	// ErrorTypeInternal indicates an unexpected internal failure.
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error with a machine-readable type.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the wrapped cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewUnavailableError creates an error for an uninitialized collaborator.
func NewUnavailableError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeUnavailable,
		Message: message,
	}
}

// NewExternalError creates a new external service error.
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}

// NewInternalError creates a new internal error.
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Err:     err,
	}
}
