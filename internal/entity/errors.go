package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a requested entity was not found.
	ErrNotFound = errors.New("entity not found")
	// ErrForbidden indicates that the actor is not the owner of the resource.
	ErrForbidden = errors.New("action forbidden")
	// ErrConflict indicates a uniqueness conflict, e.g. a duplicate email.
	ErrConflict = errors.New("conflict")
	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrInvalidTransition indicates a status change not allowed by the
	// ad lifecycle table.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrMissingRequiredField indicates a business-rule field requirement,
	// e.g. seller and location for published ads.
	ErrMissingRequiredField = errors.New("missing required field")
)

// ValidationError reports a violated entity invariant.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func newValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
