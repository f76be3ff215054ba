package core

import "fmt"

// ErrorType tags terminal errors so callers can tell them apart.
type ErrorType string

const (
	ErrTypeNotFound   ErrorType = "NOT_FOUND"
	ErrTypeValidation ErrorType = "VALIDATION"
)

// NotFoundError is returned when the input file does not exist.
type NotFoundError struct {
	Path  string
	Cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("File not found: %s", e.Path)
}

// Unwrap allows errors.Is(err, fs.ErrNotExist) to keep working
func (e *NotFoundError) Unwrap() error {
	return e.Cause
}

// Type returns the error category.
func (e *NotFoundError) Type() ErrorType {
	return ErrTypeNotFound
}

// ValidationError covers bad headers and bad command line bounds.
type ValidationError struct {
	Message string
	// Missing lists required header names absent from the input, if any.
	Missing []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Type returns the error category.
func (e *ValidationError) Type() ErrorType {
	return ErrTypeValidation
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewNotFoundError creates a not found error for path
func NewNotFoundError(path string, cause error) *NotFoundError {
	return &NotFoundError{Path: path, Cause: cause}
}
