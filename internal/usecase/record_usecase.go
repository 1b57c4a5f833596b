package usecase

import (
	"context"
	"time"

	"github.com/iho/finbook/internal/domain"
)

// RecordUseCase handles domain record queries and non-financial edits.
// Amount and account references never change here; correcting them means
// reversing the record and recording anew.
type RecordUseCase struct {
	recordRepo RecordRepository
}

// NewRecordUseCase creates a new RecordUseCase.
func NewRecordUseCase(recordRepo RecordRepository) *RecordUseCase {
	return &RecordUseCase{recordRepo: recordRepo}
}

// GetRecord retrieves a record by ID.
func (uc *RecordUseCase) GetRecord(ctx context.Context, id string) (*domain.DomainRecord, error) {
	return uc.recordRepo.GetByID(ctx, id)
}

// ListRecordsByAccountInput represents input for listing records.
type ListRecordsByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListRecordsByAccount lists records touching an account.
func (uc *RecordUseCase) ListRecordsByAccount(ctx context.Context, input ListRecordsByAccountInput) ([]*domain.DomainRecord, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.recordRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}

// UpdateRecordDetailsInput carries the editable, non-financial fields.
type UpdateRecordDetailsInput struct {
	RecordID    string
	Date        time.Time
	CategoryRef string
	Notes       string
}

// UpdateRecordDetails edits a record's date, category and notes without
// touching any balance. Voided records are frozen.
func (uc *RecordUseCase) UpdateRecordDetails(ctx context.Context, input UpdateRecordDetailsInput) (*domain.DomainRecord, error) {
	record, err := uc.recordRepo.GetByID(ctx, input.RecordID)
	if err != nil {
		return nil, err
	}

	if record.Voided {
		return nil, domain.ErrRecordVoided
	}

	now := time.Now().UTC()

	if err := uc.recordRepo.UpdateDetails(ctx, input.RecordID, input.Date, input.CategoryRef, input.Notes, now); err != nil {
		return nil, err
	}

	record.Date = input.Date
	record.CategoryRef = input.CategoryRef
	record.Notes = input.Notes
	record.UpdatedAt = now

	return record, nil
}
