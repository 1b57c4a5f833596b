package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// EntryUseCase handles ledger entry queries.
type EntryUseCase struct {
	entryRepo EntryRepository
}

// NewEntryUseCase creates a new EntryUseCase.
func NewEntryUseCase(entryRepo EntryRepository) *EntryUseCase {
	return &EntryUseCase{entryRepo: entryRepo}
}

// ListEntriesByAccountInput represents input for listing entries.
type ListEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListEntriesByAccount lists entries for an account.
func (uc *EntryUseCase) ListEntriesByAccount(ctx context.Context, input ListEntriesByAccountInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.entryRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// ListEntriesByRecord lists the entries a record produced, including any
// reversal entries that reference it.
func (uc *EntryUseCase) ListEntriesByRecord(ctx context.Context, recordID string) ([]*domain.LedgerEntry, error) {
	return uc.entryRepo.ListByRecord(ctx, recordID)
}

// GetHistoricalBalance returns the balance at a specific point in time.
func (uc *EntryUseCase) GetHistoricalBalance(ctx context.Context, accountID string, at time.Time) (decimal.Decimal, error) {
	return uc.entryRepo.BalanceAt(ctx, accountID, at)
}
