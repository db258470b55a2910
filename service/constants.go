package service

import "github.com/shopspring/decimal"

// Limits enforced by LoanService. The calculator itself accepts anything.
const (
	MaxTermYears = 50

	// Límites de términos para comparación
	MaxTermRangeYears = 30
)

var (
	MaxLoanAmount   = decimal.NewFromInt(1_000_000_000) // mil millones
	MaxInterestRate = decimal.NewFromInt(1000)          // 1000% anual
)
