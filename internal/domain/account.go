package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies how an account holds money.
type AccountKind string

const (
	AccountBank   AccountKind = "bank"
	AccountCash   AccountKind = "cash"
	AccountDebit  AccountKind = "debit"
	AccountCredit AccountKind = "credit"
)

// Valid reports whether the kind is one of the known account kinds.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountBank, AccountCash, AccountDebit, AccountCredit:
		return true
	}

	return false
}

// Account represents a tracked balance-bearing account.
// Balance is mutated only through the coordinator's conditional commit;
// Version is the optimistic-concurrency token checked at commit time.
type Account struct {
	ID          string
	Name        string
	Kind        AccountKind
	Balance     decimal.Decimal
	CreditLimit decimal.Decimal
	Active      bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCredit reports whether the account is a credit account. Credit accounts
// are exempt from the insufficient-funds rule and instead bounded by
// CreditLimit when one is configured.
func (a *Account) IsCredit() bool {
	return a.Kind == AccountCredit
}

// ProjectedBalance returns the balance after applying a signed delta.
func (a *Account) ProjectedBalance(delta decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(delta)
}
