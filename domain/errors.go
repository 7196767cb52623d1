package domain

import (
	"errors"
	"fmt"
)

// Field names used in errors and on the wire.
const (
	FieldPrincipal         = "principal"
	FieldAnnualRatePercent = "annual_rate_percent"
	FieldTermYears         = "term_years"
)

// ErrInvalidInput is the only failure the calculator reports.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError describes which value was rejected and why.
// It unwraps to ErrInvalidInput.
type InvalidInputError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid input: %s", e.Reason)
	}
	return fmt.Sprintf("invalid input: %s %s (got %v)", e.Field, e.Reason, e.Value)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}
