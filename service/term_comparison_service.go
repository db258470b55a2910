package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"loan-payment/domain"
)

type TermComparisonService struct {
	loanService *LoanService
	log         zerolog.Logger
}

func NewTermComparisonService(loanService *LoanService, log zerolog.Logger) *TermComparisonService {
	return &TermComparisonService{
		loanService: loanService,
		log:         log.With().Str("component", "term_comparison").Logger(),
	}
}

var preferenceWeights = map[string]struct{ interest, payment, term float64 }{
	domain.PreferenceMinimizeInterest: {0.6, 0.2, 0.2},
	domain.PreferenceMinimizePayment:  {0.2, 0.6, 0.2},
	domain.PreferenceBalanced:         {0.4, 0.4, 0.2},
}

// CompareTerms evaluates every whole-year term in the input range and ranks
// the ones whose monthly payment fits under the cap.
func (s *TermComparisonService) CompareTerms(
	ctx context.Context,
	input domain.TermComparisonInput,
) (domain.TermComparisonResult, error) {
	if err := validateComparison(input); err != nil {
		return domain.TermComparisonResult{}, err
	}
	if err := s.loanService.Validate(domain.LoanInput{
		Principal:         input.Principal,
		AnnualRatePercent: input.AnnualRatePercent,
		TermYears:         input.MaxTermYears,
	}); err != nil {
		return domain.TermComparisonResult{}, err
	}

	var options []domain.TermOption
	for term := input.MinTermYears; term <= input.MaxTermYears; term++ {
		result, err := s.loanService.CalculateLoan(ctx, domain.LoanInput{
			Principal:         input.Principal,
			AnnualRatePercent: input.AnnualRatePercent,
			TermYears:         term,
		})
		if err != nil {
			return domain.TermComparisonResult{}, fmt.Errorf("calculate term %d: %w", term, err)
		}

		if input.MaxMonthlyPayment.IsPositive() && result.MonthlyPayment.GreaterThan(input.MaxMonthlyPayment) {
			continue
		}

		options = append(options, domain.TermOption{
			TermYears:      term,
			MonthlyPayment: result.MonthlyPayment,
			TotalInterest:  result.TotalInterest,
			Reason:         reasonFor(input.Preference),
		})
	}

	if len(options) == 0 {
		return domain.TermComparisonResult{}, fmt.Errorf("%w: %s", ErrNoEligibleTerm, FormatCurrency(input.MaxMonthlyPayment))
	}

	scoreOptions(options, input)

	sort.SliceStable(options, func(i, j int) bool {
		if c := options[i].Score.Cmp(options[j].Score); c != 0 {
			return c > 0
		}
		return options[i].TermYears < options[j].TermYears
	})

	s.log.Debug().
		Int("evaluated", int(input.MaxTermYears-input.MinTermYears)+1).
		Int("eligible", len(options)).
		Uint32("recommended", options[0].TermYears).
		Msg("terms compared")

	return domain.TermComparisonResult{
		RecommendedTermYears: options[0].TermYears,
		Options:              options,
	}, nil
}

func validateComparison(input domain.TermComparisonInput) error {
	if input.MinTermYears == 0 || input.MaxTermYears == 0 {
		return fmt.Errorf("%w: terms must be at least one year", ErrInvalidTermRange)
	}
	if input.MinTermYears > input.MaxTermYears {
		return fmt.Errorf("%w: minimum term exceeds maximum term", ErrInvalidTermRange)
	}
	if input.MaxTermYears > MaxTermYears {
		return fmt.Errorf("%w: maximum term exceeds %d years", ErrInvalidTermRange, MaxTermYears)
	}
	if input.MaxTermYears-input.MinTermYears > MaxTermRangeYears {
		return fmt.Errorf("%w: range exceeds %d years", ErrInvalidTermRange, MaxTermRangeYears)
	}
	if input.MaxMonthlyPayment.IsNegative() {
		return fmt.Errorf("%w: must not be negative", ErrInvalidPaymentCap)
	}
	if _, ok := preferenceWeights[input.Preference]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPreference, input.Preference)
	}
	return nil
}

// scoreOptions assigns each option a 0-10 score. Interest and payment are
// normalized over the eligible options, term over the requested range.
func scoreOptions(options []domain.TermOption, input domain.TermComparisonInput) {
	minInterest, maxInterest := options[0].TotalInterest.InexactFloat64(), options[0].TotalInterest.InexactFloat64()
	minPayment, maxPayment := options[0].MonthlyPayment.InexactFloat64(), options[0].MonthlyPayment.InexactFloat64()
	for _, o := range options[1:] {
		interest, payment := o.TotalInterest.InexactFloat64(), o.MonthlyPayment.InexactFloat64()
		minInterest, maxInterest = min(minInterest, interest), max(maxInterest, interest)
		minPayment, maxPayment = min(minPayment, payment), max(maxPayment, payment)
	}

	w := preferenceWeights[input.Preference]
	for i := range options {
		interestScore := normalized(options[i].TotalInterest.InexactFloat64(), minInterest, maxInterest)
		paymentScore := normalized(options[i].MonthlyPayment.InexactFloat64(), minPayment, maxPayment)
		termScore := normalized(float64(options[i].TermYears), float64(input.MinTermYears), float64(input.MaxTermYears))

		score := w.interest*interestScore + w.payment*paymentScore + w.term*termScore
		options[i].Score = decimal.NewFromFloat(score).Round(2)
	}
}

// normalized maps v in [lo, hi] to 10 (at lo) through 0 (at hi).
func normalized(v, lo, hi float64) float64 {
	if hi <= lo {
		return 10
	}
	return 10 * (1 - (v-lo)/(hi-lo))
}

func reasonFor(preference string) string {
	switch preference {
	case domain.PreferenceMinimizeInterest:
		return "Term optimized to minimize total interest paid"
	case domain.PreferenceMinimizePayment:
		return "Term optimized to minimize the monthly payment"
	case domain.PreferenceBalanced:
		return "Balance between monthly payment and total cost"
	}
	return "Recommendation based on the provided parameters"
}
