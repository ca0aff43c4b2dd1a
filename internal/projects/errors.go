package projects

import "errors"

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrStatusChange    = errors.New("status change not allowed")
	ErrValidation      = errors.New("validation failed")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
