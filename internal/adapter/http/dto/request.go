package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		Name:           r.Name,
		Kind:           domain.AccountKind(r.Kind),
		CreditLimit:    r.CreditLimit,
		OpeningBalance: r.OpeningBalance,
	}
}

// MovementRequest represents a request for a single-account movement.
// The kind comes from the route, not the body.
type MovementRequest struct {
	AccountID   string          `json:"account_id"`
	CategoryRef string          `json:"category_ref,omitempty"`
	SourceRef   string          `json:"source_ref,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Date        *time.Time      `json:"date,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// EffectiveDate returns the movement date, defaulting to now.
func (r *MovementRequest) EffectiveDate() time.Time {
	if r.Date != nil {
		return *r.Date
	}

	return time.Now().UTC()
}

// TransferRequest represents a request to move funds between accounts.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          *time.Time      `json:"date,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.PerformTransferInput {
	date := time.Now().UTC()
	if r.Date != nil {
		date = *r.Date
	}

	return usecase.PerformTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Date:          date,
		Notes:         r.Notes,
	}
}

// ReverseRecordRequest represents a request to reverse a record.
type ReverseRecordRequest struct {
	Notes string `json:"notes,omitempty"`
}

// UpdateRecordRequest carries the editable, non-financial record fields.
type UpdateRecordRequest struct {
	Date        time.Time `json:"date"`
	CategoryRef string    `json:"category_ref"`
	Notes       string    `json:"notes"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateRecordRequest) ToUseCaseInput(recordID string) usecase.UpdateRecordDetailsInput {
	return usecase.UpdateRecordDetailsInput{
		RecordID:    recordID,
		Date:        r.Date,
		CategoryRef: r.CategoryRef,
		Notes:       r.Notes,
	}
}
