package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrColumnNotFound = errors.New("column not found")

	// Request errors
	ErrInvalidMethod = errors.New("method must be 'zscore' or 'iqr'")
	ErrInvalidPolicy = errors.New("missing-value policy must be 'drop', 'mean' or 'median'")

	// Data errors
	ErrEmptyData        = errors.New("no numeric data available")
	ErrNotNumeric       = errors.New("column is not numeric")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// Error constructors with context
func NewColumnNotFoundError(column string) error {
	return fmt.Errorf("%w: '%s'", ErrColumnNotFound, column)
}

func NewInvalidMethodError(method string) error {
	return fmt.Errorf("%w (got '%s')", ErrInvalidMethod, method)
}

func NewInvalidPolicyError(policy string) error {
	return fmt.Errorf("%w (got '%s')", ErrInvalidPolicy, policy)
}

func NewNotNumericError(column string) error {
	return fmt.Errorf("%w: '%s'", ErrNotNumeric, column)
}

// IsClientError reports whether err is caused by the request rather than the service.
func IsClientError(err error) bool {
	return errors.Is(err, ErrColumnNotFound) ||
		errors.Is(err, ErrInvalidMethod) ||
		errors.Is(err, ErrInvalidPolicy) ||
		errors.Is(err, ErrEmptyData) ||
		errors.Is(err, ErrNotNumeric) ||
		errors.Is(err, ErrInsufficientData)
}
