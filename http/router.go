package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"loan-payment/metrics"
	"loan-payment/service"
)

// RouterConfig wires the services behind the HTTP API.
type RouterConfig struct {
	LoanService           *service.LoanService
	TermComparisonService *service.TermComparisonService
	RateLimiter           *RateLimiter
	Metrics               *metrics.Metrics
	CORSOrigins           []string
	Log                   zerolog.Logger
}

// NewRouter builds the chi router serving the loan API.
func NewRouter(cfg RouterConfig) http.Handler {
	log := cfg.Log.With().Str("component", "http").Logger()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(middleware.RealIP)
	r.Use(observe(log, cfg.Metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", handleHealth)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	loanHandler := NewLoanHandler(cfg.LoanService, log)
	termHandler := NewTermComparisonHandler(cfg.TermComparisonService, log)

	r.Route("/loan", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(RateLimitMiddleware(cfg.RateLimiter))
		}
		r.Post("/calculate", loanHandler.CalculateLoan)
		r.Post("/compare-terms", termHandler.CompareTerms)
	})

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
