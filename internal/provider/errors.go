package provider

import "errors"

var (
	// ErrUnsupportedResource is returned when an address does not match a shape
	// the attempted operation accepts.
	ErrUnsupportedResource = errors.New("unsupported resource")
	// ErrInvalidField is returned when a write carries a value the products
	// table cannot take. Nothing is written.
	ErrInvalidField = errors.New("invalid field")
	// ErrStorage wraps failures reported by the storage engine.
	ErrStorage = errors.New("storage failure")
)

// NoID is returned by Insert when the store could not assign an identifier.
const NoID int64 = -1

// FieldError names the column that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match ErrInvalidField.
func (e *FieldError) Unwrap() error {
	return ErrInvalidField
}

func fieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
