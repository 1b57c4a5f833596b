package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tags the business meaning of a balance movement. Ledger
// amounts are stored non-negative; the kind carries the sign.
type MovementKind string

const (
	KindIncome      MovementKind = "income"
	KindExpense     MovementKind = "expense"
	KindInvestment  MovementKind = "investment"
	KindTransferIn  MovementKind = "transfer_in"
	KindTransferOut MovementKind = "transfer_out"
	KindCreditUsage MovementKind = "credit_usage"
	KindAdjustment  MovementKind = "adjustment"
	KindReversal    MovementKind = "reversal"
)

// Valid reports whether the kind is one of the known movement kinds.
func (k MovementKind) Valid() bool {
	return k.Sign() != 0 || k == KindReversal
}

// Sign returns +1 for balance-increasing kinds and -1 for balance-decreasing
// kinds. KindReversal carries no sign of its own: a reversal entry negates
// the sign of the kind it reverses, see ReversalSign. Unknown kinds return 0.
func (k MovementKind) Sign() int {
	switch k {
	case KindIncome, KindTransferIn, KindAdjustment:
		return 1
	case KindExpense, KindInvestment, KindTransferOut, KindCreditUsage:
		return -1
	}

	return 0
}

// ReversalSign returns the sign of an entry that reverses the given kind.
// Each kind gets its own mapping; reversing a credit usage is not the same
// ledger event as reversing an expense even though both add funds back.
func ReversalSign(reversed MovementKind) int {
	return -reversed.Sign()
}

// Leg describes the effect of a movement on a single account. Amount is
// non-negative; the signed delta follows from Kind (and ReversedKind when
// Kind is KindReversal).
type Leg struct {
	AccountID    string
	Kind         MovementKind
	ReversedKind MovementKind
	Amount       decimal.Decimal
}

// Delta returns the signed balance change this leg applies.
func (l Leg) Delta() decimal.Decimal {
	sign := l.Kind.Sign()
	if l.Kind == KindReversal {
		sign = ReversalSign(l.ReversedKind)
	}

	if sign < 0 {
		return l.Amount.Neg()
	}

	return l.Amount
}

// MovementRequest is the unit of work the coordinator commits atomically:
// one or two account legs, the domain record to insert (nil for reversals),
// and optionally a prior record to void in the same commit.
type MovementRequest struct {
	Legs         []Leg
	Record       *DomainRecord
	VoidRecordID string
	Date         time.Time
	Description  string
}

// Validate checks the request shape before any account state is read.
// Business rules that depend on balances live in ValidateMovement.
func (r *MovementRequest) Validate() error {
	if len(r.Legs) == 0 || len(r.Legs) > 2 {
		return ErrInvalidMovementKind
	}

	for _, leg := range r.Legs {
		if !leg.Kind.Valid() {
			return ErrInvalidMovementKind
		}

		if leg.Kind == KindReversal && ReversalSign(leg.ReversedKind) == 0 {
			return ErrInvalidMovementKind
		}

		if leg.Amount.LessThanOrEqual(decimal.Zero) {
			return ErrInvalidAmount
		}
	}

	if len(r.Legs) == 2 && r.Legs[0].AccountID == r.Legs[1].AccountID {
		return ErrSameAccountTransfer
	}

	return nil
}

// AccountIDs returns the distinct account ids touched by the request,
// in leg order.
func (r *MovementRequest) AccountIDs() []string {
	ids := make([]string, 0, len(r.Legs))
	seen := make(map[string]bool, len(r.Legs))

	for _, leg := range r.Legs {
		if !seen[leg.AccountID] {
			seen[leg.AccountID] = true
			ids = append(ids, leg.AccountID)
		}
	}

	return ids
}

// MovementResult reports what a committed movement created.
type MovementResult struct {
	RecordID string
	EntryIDs []string
	Balances map[string]decimal.Decimal
}

// NewIncomeMovement builds the request for recording income into an account.
func NewIncomeMovement(accountID, sourceRef string, amount decimal.Decimal, date time.Time, notes string) MovementRequest {
	return singleLegMovement(KindIncome, accountID, sourceRef, amount, date, notes)
}

// NewExpenseMovement builds the request for recording an expense.
func NewExpenseMovement(accountID, categoryRef string, amount decimal.Decimal, date time.Time, notes string) MovementRequest {
	return singleLegMovement(KindExpense, accountID, categoryRef, amount, date, notes)
}

// NewInvestmentMovement builds the request for recording an investment.
func NewInvestmentMovement(accountID, categoryRef string, amount decimal.Decimal, date time.Time, notes string) MovementRequest {
	return singleLegMovement(KindInvestment, accountID, categoryRef, amount, date, notes)
}

// NewCreditUsageMovement builds the request for recording usage of a credit
// account; the credit-limit rule applies at validation time.
func NewCreditUsageMovement(accountID string, amount decimal.Decimal, date time.Time, notes string) MovementRequest {
	return singleLegMovement(KindCreditUsage, accountID, "", amount, date, notes)
}

// NewOpeningAdjustment builds the request that seeds an account's opening
// balance as an adjustment entry, so the ledger sum always reproduces the
// balance from zero.
func NewOpeningAdjustment(accountID string, amount decimal.Decimal, date time.Time) MovementRequest {
	return singleLegMovement(KindAdjustment, accountID, "", amount, date, "opening balance")
}

// NewTransferMovement builds the two-leg request for moving funds between
// accounts. Both legs validate and commit together: if the source leg would
// overdraw, the destination is never credited.
func NewTransferMovement(fromAccountID, toAccountID string, amount decimal.Decimal, date time.Time, notes string) MovementRequest {
	return MovementRequest{
		Legs: []Leg{
			{AccountID: fromAccountID, Kind: KindTransferOut, Amount: amount},
			{AccountID: toAccountID, Kind: KindTransferIn, Amount: amount},
		},
		Record: &DomainRecord{
			Kind:          KindTransferOut,
			FromAccountID: fromAccountID,
			ToAccountID:   toAccountID,
			Amount:        amount,
			Date:          date,
			Notes:         notes,
		},
		Date:        date,
		Description: notes,
	}
}

// NewReversalMovement builds the compensating request for a committed record.
// Every leg the original applied gets an inverse reversal leg, the original
// record is voided in the same commit, and no new domain record is created:
// the reversal ledger entries are the durable trace.
func NewReversalMovement(rec *DomainRecord, date time.Time, notes string) MovementRequest {
	var legs []Leg

	if rec.Kind == KindTransferOut || rec.Kind == KindTransferIn {
		legs = []Leg{
			{AccountID: rec.FromAccountID, Kind: KindReversal, ReversedKind: KindTransferOut, Amount: rec.Amount},
			{AccountID: rec.ToAccountID, Kind: KindReversal, ReversedKind: KindTransferIn, Amount: rec.Amount},
		}
	} else {
		legs = []Leg{
			{AccountID: rec.AccountID, Kind: KindReversal, ReversedKind: rec.Kind, Amount: rec.Amount},
		}
	}

	return MovementRequest{
		Legs:         legs,
		VoidRecordID: rec.ID,
		Date:         date,
		Description:  notes,
	}
}

func singleLegMovement(kind MovementKind, accountID, categoryRef string, amount decimal.Decimal, date time.Time, notes string) MovementRequest {
	return MovementRequest{
		Legs: []Leg{
			{AccountID: accountID, Kind: kind, Amount: amount},
		},
		Record: &DomainRecord{
			Kind:        kind,
			AccountID:   accountID,
			Amount:      amount,
			CategoryRef: categoryRef,
			Date:        date,
			Notes:       notes,
		},
		Date:        date,
		Description: notes,
	}
}
