package domain

import "github.com/shopspring/decimal"

type LoanInput struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	TermYears         uint32          `json:"term_years"`
}

// Months returns the term in monthly periods.
func (in LoanInput) Months() int64 {
	return int64(in.TermYears) * 12
}

type LoanResult struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
}
