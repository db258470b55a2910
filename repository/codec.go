package repository

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vmihailenco/msgpack/v5"

	"loan-payment/domain"
)

// cachedResult is the wire form of a domain.LoanResult. Decimals travel as
// strings so no precision is lost.
type cachedResult struct {
	MonthlyPayment string `msgpack:"m"`
	TotalPayment   string `msgpack:"t"`
	TotalInterest  string `msgpack:"i"`
}

// EncodeResult serializes a loan result for storage in a cache.
func EncodeResult(result domain.LoanResult) ([]byte, error) {
	return msgpack.Marshal(cachedResult{
		MonthlyPayment: result.MonthlyPayment.String(),
		TotalPayment:   result.TotalPayment.String(),
		TotalInterest:  result.TotalInterest.String(),
	})
}

// DecodeResult parses a value written by EncodeResult.
func DecodeResult(data []byte) (domain.LoanResult, error) {
	var c cachedResult
	if err := msgpack.Unmarshal(data, &c); err != nil {
		return domain.LoanResult{}, fmt.Errorf("decode cached result: %w", err)
	}

	monthly, err := decimal.NewFromString(c.MonthlyPayment)
	if err != nil {
		return domain.LoanResult{}, fmt.Errorf("decode monthly payment: %w", err)
	}
	total, err := decimal.NewFromString(c.TotalPayment)
	if err != nil {
		return domain.LoanResult{}, fmt.Errorf("decode total payment: %w", err)
	}
	interest, err := decimal.NewFromString(c.TotalInterest)
	if err != nil {
		return domain.LoanResult{}, fmt.Errorf("decode total interest: %w", err)
	}

	return domain.LoanResult{
		MonthlyPayment: monthly,
		TotalPayment:   total,
		TotalInterest:  interest,
	}, nil
}
