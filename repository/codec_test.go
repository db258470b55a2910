package repository

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"loan-payment/domain"
)

func TestEncodeDecodeResult(t *testing.T) {
	in := domain.LoanResult{
		MonthlyPayment: decimal.RequireFromString("1073.64"),
		TotalPayment:   decimal.RequireFromString("386511.57"),
		TotalInterest:  decimal.RequireFromString("186511.57"),
	}

	data, err := EncodeResult(in)
	require.NoError(t, err)

	out, err := DecodeResult(data)
	require.NoError(t, err)
	assert.True(t, in.MonthlyPayment.Equal(out.MonthlyPayment))
	assert.True(t, in.TotalPayment.Equal(out.TotalPayment))
	assert.True(t, in.TotalInterest.Equal(out.TotalInterest))
}

func TestDecodeResult_Errors(t *testing.T) {
	_, err := DecodeResult([]byte("not msgpack"))
	assert.Error(t, err)

	bad, err := msgpack.Marshal(cachedResult{MonthlyPayment: "abc", TotalPayment: "1", TotalInterest: "1"})
	require.NoError(t, err)
	_, err = DecodeResult(bad)
	assert.ErrorContains(t, err, "monthly payment")
}
