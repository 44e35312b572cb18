package application

import "errors"

var (
	// ErrIssuerMismatch ...
	ErrIssuerMismatch = errors.New("all records must share the same issuer")
	// ErrAuthorityMismatch ...
	ErrAuthorityMismatch = errors.New("all records must share the same settlement authority")
	// ErrInvalidChangeAmount ...
	ErrInvalidChangeAmount = errors.New("change amount must be strictly lower than the total input amount")
	// ErrEmptySelection ...
	ErrEmptySelection = errors.New("no eligible records found for selection")
	// ErrInsufficientFunds ...
	ErrInsufficientFunds = errors.New("total amount of eligible records does not cover the target amount")
	// ErrAmbiguousOwnership ...
	ErrAmbiguousOwnership = errors.New("more than one record matches the given non-fungible type")
	// ErrRecordNotFound ...
	ErrRecordNotFound = errors.New("no record matches the given non-fungible type")
	// ErrMissingMaintainers is returned when registering an evolvable type
	// with no declared maintainer.
	ErrMissingMaintainers = errors.New("token type must declare at least one maintainer")
	// ErrMissingNotary ...
	ErrMissingNotary = errors.New("settlement authority must not be empty")
)
