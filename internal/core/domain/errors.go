package domain

import (
	"errors"
	"fmt"
)

// ErrValidation marks malformed or missing input. Wrap it with
// NewValidationError to carry a client-facing message.
var ErrValidation = errors.New("validation failed")

// NewValidationError returns an error that matches ErrValidation and whose
// message is msg.
func NewValidationError(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

// Validationf is NewValidationError with formatting.
func Validationf(format string, args ...any) error {
	return NewValidationError(fmt.Sprintf(format, args...))
}
