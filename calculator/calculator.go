// Package calculator computes the fixed monthly installment (EMI) of an
// amortizing loan. Everything here is pure and safe for concurrent use.
package calculator

import (
	"math"

	"emi-calculator/domain"
)

const (
	MonthsPerYear = 12
	percent       = 100
)

// Compute returns the monthly payment, total interest and total payment for a
// fixed-rate loan. Any non-positive or non-finite argument yields an error
// wrapping domain.ErrInvalidInput.
func Compute(principal, annualRatePercent, termYears float64) (domain.LoanResult, error) {
	if err := validate(domain.FieldPrincipal, principal); err != nil {
		return domain.LoanResult{}, err
	}
	if err := validate(domain.FieldAnnualRatePercent, annualRatePercent); err != nil {
		return domain.LoanResult{}, err
	}
	if err := validate(domain.FieldTermYears, termYears); err != nil {
		return domain.LoanResult{}, err
	}

	monthlyRate := annualRatePercent / MonthsPerYear / percent
	payments := termYears * MonthsPerYear

	// payments may be fractional, so the exponent stays real.
	growth := math.Pow(1+monthlyRate, payments)

	var monthly float64
	switch {
	case math.IsInf(growth, 1):
		monthly = principal * monthlyRate
	case growth == 1:
		monthly = principal / payments
	default:
		monthly = principal * monthlyRate * growth / (growth - 1)
	}

	totalPaid := monthly * payments
	totalInterest := math.Max(0, totalPaid-principal)

	if !isFinite(monthly) || !isFinite(totalPaid) {
		return domain.LoanResult{}, &domain.InvalidInputError{Reason: "result out of range"}
	}

	return domain.LoanResult{
		MonthlyPayment: monthly,
		TotalInterest:  totalInterest,
		TotalPayment:   totalPaid,
	}, nil
}

// ComputeInput is Compute for a domain.LoanInput.
func ComputeInput(input domain.LoanInput) (domain.LoanResult, error) {
	return Compute(input.Principal, input.AnnualRatePercent, input.TermYears)
}

func validate(field string, v float64) error {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return &domain.InvalidInputError{Field: field, Value: v, Reason: "must be a finite number"}
	case v <= 0:
		return &domain.InvalidInputError{Field: field, Value: v, Reason: "must be greater than zero"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
