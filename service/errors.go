package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is the single failure class of the calculator. Callers suppress
// the result instead of surfacing a hard failure.
var ErrInvalidInput = errors.New("invalid input")

// ErrNoWeekPlan is returned when no week count fits the requested weekly ceiling.
var ErrNoWeekPlan = errors.New("no week count satisfies the weekly amount limit")

// ValidationError names the offending field. It matches ErrInvalidInput via errors.Is.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
