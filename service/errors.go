package service

import "errors"

var (
	// ErrInvalidLoanTerms rejects non-positive principal or count, negative
	// rate, or an unknown cadence/method. Nothing is persisted.
	ErrInvalidLoanTerms = errors.New("invalid loan terms")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
)
