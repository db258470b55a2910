package domain

import "github.com/shopspring/decimal"

// Preferences accepted by term comparison.
const (
	PreferenceMinimizeInterest = "minimize_interest"
	PreferenceMinimizePayment  = "minimize_payment"
	PreferenceBalanced         = "balanced"
)

type TermComparisonInput struct {
	Principal         decimal.Decimal `json:"principal"`
	AnnualRatePercent decimal.Decimal `json:"annual_rate_percent"`
	MinTermYears      uint32          `json:"min_term_years"`
	MaxTermYears      uint32          `json:"max_term_years"`
	// MaxMonthlyPayment caps eligible terms; zero means no cap.
	MaxMonthlyPayment decimal.Decimal `json:"max_monthly_payment"`
	Preference        string          `json:"preference"`
}

type TermOption struct {
	TermYears      uint32          `json:"term_years"`
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	Score          decimal.Decimal `json:"score"`
	Reason         string          `json:"reason"`
}

type TermComparisonResult struct {
	RecommendedTermYears uint32       `json:"recommended_term_years"`
	Options              []TermOption `json:"options"`
}
