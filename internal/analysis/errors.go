package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the single failure kind of the calculator and aggregator.
// Every validation error wraps it, so callers can check with errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError describes which field failed validation and why
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
