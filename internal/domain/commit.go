package domain

import "github.com/shopspring/decimal"

// AccountUpdate is one version-checked balance write inside a commit.
// The store applies it only if the account's stored version still equals
// ExpectedVersion, bumping the version on success.
type AccountUpdate struct {
	AccountID       string
	NewBalance      decimal.Decimal
	ExpectedVersion int64
}

// Commit bundles everything a movement writes: the balance updates, the
// domain record to insert (or void), the ledger entries to append, and the
// change event for subscribers. The store executes the bundle all-or-nothing;
// a stale ExpectedVersion fails the whole commit with ErrVersionConflict and
// leaves no trace.
type Commit struct {
	Updates      []AccountUpdate
	Record       *DomainRecord
	VoidRecordID string
	Entries      []*LedgerEntry
	Event        *ChangeEvent
}
