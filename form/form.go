// Package form is the presentation side of the calculator: it checks that
// the three text fields were filled in with numbers and formats results for
// display. Whether the numbers are acceptable loan terms is decided by the
// calculator, not here.
package form

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"emi-calculator/domain"

	"github.com/shopspring/decimal"
)

// Fields is the raw text the user typed.
type Fields struct {
	Principal         string `json:"principal"`
	AnnualRatePercent string `json:"annual_rate_percent"`
	TermYears         string `json:"term_years"`
}

type field struct {
	name     string
	required string
	notNum   string
}

var fieldOrder = []field{
	{domain.FieldPrincipal, "Enter principal amount", "Principal amount must be a number"},
	{domain.FieldAnnualRatePercent, "Enter interest rate", "Interest rate must be a number"},
	{domain.FieldTermYears, "Enter years", "Years must be a number"},
}

// FieldErrors maps a field name to the message shown next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, f := range fieldOrder {
		if msg, ok := e[f.name]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}

// Parse converts the text fields into a LoanInput. It returns FieldErrors
// covering every empty or non-numeric field.
func Parse(f Fields) (domain.LoanInput, error) {
	raw := map[string]string{
		domain.FieldPrincipal:         f.Principal,
		domain.FieldAnnualRatePercent: f.AnnualRatePercent,
		domain.FieldTermYears:         f.TermYears,
	}

	values := make(map[string]float64, len(fieldOrder))
	errs := FieldErrors{}

	for _, fd := range fieldOrder {
		text := strings.TrimSpace(raw[fd.name])
		if text == "" {
			errs[fd.name] = fd.required
			continue
		}
		v, ok := parseNumber(text)
		if !ok {
			errs[fd.name] = fd.notNum
			continue
		}
		values[fd.name] = v
	}

	if len(errs) > 0 {
		return domain.LoanInput{}, errs
	}

	return domain.LoanInput{
		Principal:         values[domain.FieldPrincipal],
		AnnualRatePercent: values[domain.FieldAnnualRatePercent],
		TermYears:         values[domain.FieldTermYears],
	}, nil
}

// parseNumber accepts plain decimal notation with an optional exponent.
// Spellings such as "NaN", "Inf" or hex floats are not numbers here. A value
// beyond float64 range comes back as ±Inf and is left to the calculator.
func parseNumber(text string) (float64, bool) {
	if _, err := decimal.NewFromString(text); err != nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// Clear returns an empty form.
func Clear() Fields {
	return Fields{}
}

// Display holds the formatted output values.
type Display struct {
	MonthlyPayment string `json:"monthly_payment" yaml:"monthly_payment"`
	TotalInterest  string `json:"total_interest" yaml:"total_interest"`
	TotalPayment   string `json:"total_payment" yaml:"total_payment"`
}

// Present formats a result for display.
func Present(r domain.LoanResult) Display {
	return Display{
		MonthlyPayment: FormatAmount(r.MonthlyPayment),
		TotalInterest:  FormatAmount(r.TotalInterest),
		TotalPayment:   FormatAmount(r.TotalPayment),
	}
}

// FormatAmount renders v with exactly two decimals, rounding half away from
// zero on the shortest decimal form of v. 2.675 becomes "2.68", where
// fmt's %.2f would print "2.67".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
