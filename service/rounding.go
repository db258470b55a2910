package service

import "github.com/shopspring/decimal"

// currencyPlaces is the display precision for payments.
const currencyPlaces = 2

// RoundCurrency rounds to 2 decimal places, half to even.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(currencyPlaces)
}

// FormatCurrency renders d with exactly 2 decimal places, half to even.
func FormatCurrency(d decimal.Decimal) string {
	return d.StringFixedBank(currencyPlaces)
}
