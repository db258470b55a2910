package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-payment/repository"
	"loan-payment/service"
)

func newTestLoanService(t *testing.T) *service.LoanService {
	t.Helper()
	calc, err := service.Strategy(service.StrategyDecimal)
	require.NoError(t, err)
	return service.NewLoanService(calc, repository.NewMemoryCache(0), nil, zerolog.Nop())
}

func postJSON(target string, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCalculateLoanHandler_OK(t *testing.T) {
	handler := NewLoanHandler(newTestLoanService(t), zerolog.Nop())

	req := postJSON("/loan/calculate", `{
		"principal": "200000",
		"annual_rate_percent": 5,
		"term_years": 30
	}`)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "1073.64", body["monthly_payment"])
	assert.Equal(t, "386511.57", body["total_payment"])
	assert.Equal(t, "186511.57", body["total_interest"])
}

func TestCalculateLoanHandler_MethodNotAllowed(t *testing.T) {
	handler := NewLoanHandler(newTestLoanService(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/loan/calculate", nil)
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculateLoanHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{invalid-json}`},
		{"negative term", `{"principal": 1000, "annual_rate_percent": 5, "term_years": -1}`},
		{"unknown field", `{"monto": 10000}`},
		{"bad decimal", `{"principal": "lots", "annual_rate_percent": 5, "term_years": 1}`},
		{"validation", `{"principal": -1000, "annual_rate_percent": 5, "term_years": 1}`},
		{"term too long", `{"principal": 1000, "annual_rate_percent": 5, "term_years": 99}`},
		{"oversized body", `{"principal": "` + strings.Repeat("1", maxBodyBytes) + `", "annual_rate_percent": 5, "term_years": 1}`},
	}

	handler := NewLoanHandler(newTestLoanService(t), zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CalculateLoan(w, postJSON("/loan/calculate", tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCalculateLoanHandler_UnsupportedMediaType(t *testing.T) {
	handler := NewLoanHandler(newTestLoanService(t), zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/loan/calculate", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()

	handler.CalculateLoan(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}
