package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountInactive = errors.New("account is archived")

	// Movement errors
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrCreditLimitExceeded = errors.New("credit limit exceeded")
	ErrSameAccountTransfer = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInvalidMovementKind = errors.New("invalid movement kind")

	// Record errors
	ErrRecordNotFound = errors.New("record not found")
	ErrRecordVoided   = errors.New("record already voided")

	// Commit errors. ErrVersionConflict is the store-level signal that a
	// concurrent writer bumped an account version between read and commit;
	// the coordinator retries it. ErrConflict is surfaced to callers once
	// the retry budget is exhausted.
	ErrVersionConflict = errors.New("account version conflict")
	ErrConflict        = errors.New("movement conflicted with concurrent writers")
)
