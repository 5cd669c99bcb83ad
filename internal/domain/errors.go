package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation signals a malformed search request.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrUnknownCollection signals a query against an unregistered collection.
	ErrUnknownCollection = errors.New("unknown collection")
)

// ValidationError wraps ErrValidation with the offending parameter and reason.
type ValidationError struct {
	Param  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Param, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a validation error for a request parameter.
func NewValidationError(param, reason string) error {
	return &ValidationError{Param: param, Reason: reason}
}
