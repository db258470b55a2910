package http

import (
	"net/http"

	"github.com/rs/zerolog"

	"loan-payment/domain"
	"loan-payment/service"
)

type TermComparisonHandler struct {
	service *service.TermComparisonService
	log     zerolog.Logger
}

func NewTermComparisonHandler(service *service.TermComparisonService, log zerolog.Logger) *TermComparisonHandler {
	return &TermComparisonHandler{
		service: service,
		log:     log.With().Str("handler", "term_comparison").Logger(),
	}
}

func (h *TermComparisonHandler) CompareTerms(w http.ResponseWriter, r *http.Request) {
	var input domain.TermComparisonInput
	if !decodeJSON(w, r, h.log, &input) {
		return
	}

	result, err := h.service.CompareTerms(r.Context(), input)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeJSON(w, h.log, result)
}
