package service

import "fmt"

// ValidationError reports a rejected field: required but blank, or a
// numeric value that must be non-negative. Surfaced to the caller
// immediately; nothing is partially saved.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func requiredError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required field is blank"}
}

func negativeError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "must not be negative"}
}
