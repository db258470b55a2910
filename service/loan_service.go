package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"loan-payment/domain"
	"loan-payment/metrics"
	"loan-payment/repository"
)

type LoanService struct {
	calculator *Calculator
	cache      repository.CacheRepository
	metrics    *metrics.Metrics
	log        zerolog.Logger
}

// NewLoanService creates a new LoanService. cache and m may be nil.
func NewLoanService(
	calculator *Calculator,
	cache repository.CacheRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) *LoanService {
	return &LoanService{
		calculator: calculator,
		cache:      cache,
		metrics:    m,
		log:        log.With().Str("component", "loan_service").Str("strategy", calculator.Name()).Logger(),
	}
}

// Validate rejects inputs outside the range the API accepts.
func (s *LoanService) Validate(input domain.LoanInput) error {
	if input.Principal.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidPrincipal)
	}
	if input.Principal.GreaterThan(MaxLoanAmount) {
		return fmt.Errorf("%w: exceeds the maximum of %s", ErrInvalidPrincipal, FormatCurrency(MaxLoanAmount))
	}
	if input.AnnualRatePercent.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidRate)
	}
	if input.AnnualRatePercent.GreaterThan(MaxInterestRate) {
		return fmt.Errorf("%w: exceeds the maximum of %s%%", ErrInvalidRate, MaxInterestRate)
	}
	if input.TermYears > MaxTermYears {
		return fmt.Errorf("%w: exceeds the maximum of %d years", ErrInvalidTerm, MaxTermYears)
	}
	return nil
}

// CalculateLoan calculates the loan details based on the input parameters.
func (s *LoanService) CalculateLoan(
	ctx context.Context,
	input domain.LoanInput,
) (domain.LoanResult, error) {
	if err := s.Validate(input); err != nil {
		return domain.LoanResult{}, err
	}

	key := s.cacheKey(input)
	if result, ok := s.lookup(ctx, key); ok {
		return result, nil
	}

	payment := s.calculator.MonthlyPayment(input.Principal, input.AnnualRatePercent, input.TermYears)
	s.metrics.ObserveCalculation(s.calculator.Name())

	total := input.Principal
	if months := input.Months(); months > 0 {
		total = payment.Mul(decimal.NewFromInt(months))
	}
	interest := total.Sub(input.Principal)

	result := domain.LoanResult{
		MonthlyPayment: RoundCurrency(payment),
		TotalPayment:   RoundCurrency(total),
		TotalInterest:  RoundCurrency(interest),
	}

	s.log.Debug().
		Str("principal", input.Principal.String()).
		Str("annual_rate_percent", input.AnnualRatePercent.String()).
		Uint32("term_years", input.TermYears).
		Str("monthly_payment", result.MonthlyPayment.String()).
		Msg("loan calculated")

	// Guardar el resultado (no crítico si falla)
	s.store(ctx, key, result)

	return result, nil
}

func (s *LoanService) cacheKey(input domain.LoanInput) string {
	return fmt.Sprintf("loan:payment:%s:%s:%s:%d",
		s.calculator.Name(),
		input.Principal.String(),
		input.AnnualRatePercent.String(),
		input.TermYears,
	)
}

func (s *LoanService) lookup(ctx context.Context, key string) (domain.LoanResult, bool) {
	if s.cache == nil {
		return domain.LoanResult{}, false
	}

	data, ok := s.cache.Get(ctx, key)
	if ok {
		result, err := repository.DecodeResult(data)
		if err == nil {
			s.metrics.ObserveCacheLookup(true)
			return result, true
		}
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable cache entry")
	}
	s.metrics.ObserveCacheLookup(false)
	return domain.LoanResult{}, false
}

func (s *LoanService) store(ctx context.Context, key string, result domain.LoanResult) {
	if s.cache == nil {
		return
	}

	data, err := repository.EncodeResult(result)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to encode loan result")
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache loan result")
	}
}
