package domain

// LoanInput holds the three values a borrower enters.
type LoanInput struct {
	Principal         float64 `json:"principal" yaml:"principal"`
	AnnualRatePercent float64 `json:"annual_rate_percent" yaml:"annual_rate_percent"`
	TermYears         float64 `json:"term_years" yaml:"term_years"`
}

// LoanResult is the outcome of a single EMI calculation. Values are not rounded.
type LoanResult struct {
	MonthlyPayment float64 `json:"monthly_payment" yaml:"monthly_payment"`
	TotalInterest  float64 `json:"total_interest" yaml:"total_interest"`
	TotalPayment   float64 `json:"total_payment" yaml:"total_payment"`
}
