package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DomainRecord is the user-facing record behind a movement: an income,
// expense, investment, credit usage, opening adjustment or transfer.
// Date, CategoryRef and Notes may be edited later; Amount and the account
// references are financial fields and can only be undone through a reversal.
// Voided records stay in place as auditable history.
type DomainRecord struct {
	ID            string
	Kind          MovementKind
	AccountID     string
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	CategoryRef   string
	Date          time.Time
	Notes         string
	Voided        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsTransfer reports whether the record describes a two-account movement.
func (r *DomainRecord) IsTransfer() bool {
	return r.Kind == KindTransferOut || r.Kind == KindTransferIn
}
