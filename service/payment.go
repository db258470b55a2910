package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

const (
	// StrategyDecimal raises powers with decimal arithmetic only.
	StrategyDecimal = "decimal"
	// StrategyFloat raises powers through float64 math.Pow.
	StrategyFloat = "float"

	monthsPerYear = 12

	// ratePrecision is the number of fractional digits kept for the monthly rate.
	ratePrecision = 28
	// powPrecision is the number of fractional digits kept for every
	// intermediate product while raising a power.
	powPrecision = 40
)

var (
	twelve = decimal.NewFromInt(monthsPerYear)
	one    = decimal.NewFromInt(1)

	// powCeiling bounds intermediate powers. Anything beyond it inverts to
	// zero at powPrecision.
	powCeiling = decimal.New(1, powPrecision)
)

// PowerFunc raises base to an integer exponent.
type PowerFunc func(base decimal.Decimal, exp int64) decimal.Decimal

// DecimalPower computes base^exp by squaring, rounding every intermediate
// product to powPrecision fractional digits. Cost is logarithmic in exp and
// magnitudes are clamped to powCeiling, so huge terms stay cheap.
func DecimalPower(base decimal.Decimal, exp int64) decimal.Decimal {
	if exp >= 0 {
		return powPositive(base, uint64(exp))
	}

	p := powPositive(base, uint64(-exp))
	switch {
	case p.IsZero():
		return powCeiling
	case p.Abs().Cmp(powCeiling) >= 0:
		return decimal.Zero
	}
	return one.DivRound(p, powPrecision)
}

func powPositive(base decimal.Decimal, n uint64) decimal.Decimal {
	ceiling := powCeiling
	if base.Sign() < 0 && n&1 == 1 {
		ceiling = ceiling.Neg()
	}
	growing := base.Abs().Cmp(one) >= 0

	result, sq := one, base
	for {
		if n&1 == 1 {
			result = result.Mul(sq).Round(powPrecision)
		}
		n >>= 1
		if n == 0 {
			break
		}
		sq = sq.Mul(sq).Round(powPrecision)
		// Magnitudes only grow from here on.
		if growing && (sq.Abs().Cmp(powCeiling) >= 0 || result.Abs().Cmp(powCeiling) >= 0) {
			return ceiling
		}
	}
	if growing && result.Abs().Cmp(powCeiling) >= 0 {
		return ceiling
	}
	return result
}

// FloatPower converts base to float64, applies math.Pow and converts back.
// The relative error is about 1e-15, which is far below a cent for
// principals up to 1e9, rates 0-30% and terms 1-50 years. Results that do
// not fit a float64 fall back to DecimalPower.
func FloatPower(base decimal.Decimal, exp int64) decimal.Decimal {
	f := math.Pow(base.InexactFloat64(), float64(exp))
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return DecimalPower(base, exp)
	}
	return decimal.NewFromFloat(f)
}

// Calculator computes amortized monthly payments with a fixed PowerFunc.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	name string
	pow  PowerFunc
}

// NewCalculator returns a Calculator using pow for the exponentiation step.
func NewCalculator(name string, pow PowerFunc) *Calculator {
	return &Calculator{name: name, pow: pow}
}

// Strategy returns the Calculator registered under name.
func Strategy(name string) (*Calculator, error) {
	switch name {
	case StrategyDecimal:
		return NewCalculator(StrategyDecimal, DecimalPower), nil
	case StrategyFloat:
		return NewCalculator(StrategyFloat, FloatPower), nil
	}
	return nil, fmt.Errorf("unknown power strategy %q", name)
}

// Name returns the strategy name.
func (c *Calculator) Name() string {
	return c.name
}

// MonthlyPayment returns the fixed monthly payment for a loan of principal
// at annualRatePercent (5 means 5%) over termYears. The result is not
// rounded. Inputs are not validated: negative values yield a consistent but
// meaningless figure.
func (c *Calculator) MonthlyPayment(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termYears uint32,
) decimal.Decimal {
	if termYears == 0 {
		return principal
	}
	months := int64(termYears) * monthsPerYear
	if months == 0 {
		return principal
	}
	n := decimal.NewFromInt(months)

	monthlyRate := MonthlyRate(annualRatePercent)
	if monthlyRate.IsZero() {
		return principal.Div(n)
	}

	numerator := principal.Mul(monthlyRate)
	denominator := one.Sub(c.pow(one.Add(monthlyRate), -months))
	if denominator.IsZero() {
		// The power rounded to one: the rate is too small to register.
		return principal.Div(n)
	}

	return numerator.Div(denominator)
}

// MonthlyRate converts an annual percentage to a fractional monthly rate.
func MonthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Shift(-2).DivRound(twelve, ratePrecision)
}

var defaultCalculator = NewCalculator(StrategyDecimal, DecimalPower)

// CalculateMonthlyPayment computes the monthly payment with DecimalPower.
func CalculateMonthlyPayment(
	principal decimal.Decimal,
	annualRatePercent decimal.Decimal,
	termYears uint32,
) decimal.Decimal {
	return defaultCalculator.MonthlyPayment(principal, annualRatePercent, termYears)
}
