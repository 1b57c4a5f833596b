package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the immutable trace of one balance movement on one account.
// Entries are never updated or deleted; their signed sum per account defines
// that account's balance.
type LedgerEntry struct {
	ID              string
	AccountID       string
	Kind            MovementKind
	ReversedKind    MovementKind
	Amount          decimal.Decimal
	Date            time.Time
	CategoryRef     string
	RelatedRecordID string
	Description     string
	PreviousBalance decimal.Decimal
	CurrentBalance  decimal.Decimal
	AccountVersion  int64
	CreatedAt       time.Time
}

// SignedAmount returns the balance effect of the entry. Amount is stored
// non-negative; the sign follows from Kind, or from the reversed kind for
// reversal entries.
func (e *LedgerEntry) SignedAmount() decimal.Decimal {
	sign := e.Kind.Sign()
	if e.Kind == KindReversal {
		sign = ReversalSign(e.ReversedKind)
	}

	if sign < 0 {
		return e.Amount.Neg()
	}

	return e.Amount
}
