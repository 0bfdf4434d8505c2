package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidInputError reports an input rejected before any computation ran
type InvalidInputError struct {
	Field  string
	Value  interface{}
	Reason string
}

// NewInvalidInputError creates an InvalidInputError for field
func NewInvalidInputError(field string, value interface{}, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Value: value, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}

// ComputationError reports an intermediate quantity that became unusable
// (negative or zero where a positive value is required).
type ComputationError struct {
	Field  string
	Value  decimal.Decimal
	Reason string
}

// NewComputationError creates a ComputationError for field
func NewComputationError(field string, value decimal.Decimal, reason string) *ComputationError {
	return &ComputationError{Field: field, Value: value, Reason: reason}
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("computation failed for %s (%s): %s", e.Field, e.Value, e.Reason)
}

// IsInvalidInput reports whether err wraps an InvalidInputError
func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// IsComputation reports whether err wraps a ComputationError
func IsComputation(err error) bool {
	var target *ComputationError
	return errors.As(err, &target)
}
