package service

import "errors"

var (
	ErrInvalidPrincipal  = errors.New("invalid principal")
	ErrInvalidRate       = errors.New("invalid annual rate")
	ErrInvalidTerm       = errors.New("invalid term")
	ErrInvalidTermRange  = errors.New("invalid term range")
	ErrInvalidPreference = errors.New("invalid preference")
	ErrInvalidPaymentCap = errors.New("invalid maximum monthly payment")
	ErrNoEligibleTerm    = errors.New("no term satisfies the maximum monthly payment")
)

// IsValidationError reports whether err was caused by bad input.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidPrincipal) ||
		errors.Is(err, ErrInvalidRate) ||
		errors.Is(err, ErrInvalidTerm) ||
		errors.Is(err, ErrInvalidTermRange) ||
		errors.Is(err, ErrInvalidPreference) ||
		errors.Is(err, ErrInvalidPaymentCap) ||
		errors.Is(err, ErrNoEligibleTerm)
}
