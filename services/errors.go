package services

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Lookup and lifecycle errors
var (
	ErrSocialCaseNotFound = errors.New("social case not found")
	ErrDerivationNotFound = errors.New("derivation not found")
	ErrPlanNotFound       = errors.New("intervention plan not found")
	ErrInvalidTransition  = errors.New("invalid social case state transition")
)

// ValidationError reports malformed or missing input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// fieldLength pairs an input value with the size of the column storing it
type fieldLength struct {
	field string
	value string
	max   int
}

// checkLengths fails on the first value longer than its column, counted in characters
func checkLengths(fields ...fieldLength) error {
	for _, f := range fields {
		if utf8.RuneCountInString(f.value) > f.max {
			return newValidationError(f.field, fmt.Sprintf("must be at most %d characters", f.max))
		}
	}
	return nil
}

// transitionError wraps ErrInvalidTransition with the offending states
func transitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
