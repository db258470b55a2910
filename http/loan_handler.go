package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"loan-payment/domain"
	"loan-payment/service"
)

type LoanHandler struct {
	service *service.LoanService
	log     zerolog.Logger
}

func NewLoanHandler(service *service.LoanService, log zerolog.Logger) *LoanHandler {
	return &LoanHandler{
		service: service,
		log:     log.With().Str("handler", "loan").Logger(),
	}
}

func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, result)
}
