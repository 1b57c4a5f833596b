package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Kind        string          `json:"kind"`
	Balance     decimal.Decimal `json:"balance"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Active      bool            `json:"active"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:          a.ID,
		Name:        a.Name,
		Kind:        string(a.Kind),
		Balance:     a.Balance,
		CreditLimit: a.CreditLimit,
		Active:      a.Active,
		Version:     a.Version,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}

	return result
}

// MovementResponse reports what a committed movement created.
type MovementResponse struct {
	RecordID string                     `json:"record_id"`
	EntryIDs []string                   `json:"entry_ids"`
	Balances map[string]decimal.Decimal `json:"balances"`
}

// MovementFromResult converts a movement result to a response.
func MovementFromResult(result *domain.MovementResult) *MovementResponse {
	return &MovementResponse{
		RecordID: result.RecordID,
		EntryIDs: result.EntryIDs,
		Balances: result.Balances,
	}
}

// RecordResponse represents a domain record in API responses.
type RecordResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"kind"`
	AccountID     string          `json:"account_id,omitempty"`
	FromAccountID string          `json:"from_account_id,omitempty"`
	ToAccountID   string          `json:"to_account_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	CategoryRef   string          `json:"category_ref,omitempty"`
	Date          time.Time       `json:"date"`
	Notes         string          `json:"notes,omitempty"`
	Voided        bool            `json:"voided"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// RecordFromDomain converts a domain record to a response.
func RecordFromDomain(rec *domain.DomainRecord) *RecordResponse {
	return &RecordResponse{
		ID:            rec.ID,
		Kind:          string(rec.Kind),
		AccountID:     rec.AccountID,
		FromAccountID: rec.FromAccountID,
		ToAccountID:   rec.ToAccountID,
		Amount:        rec.Amount,
		CategoryRef:   rec.CategoryRef,
		Date:          rec.Date,
		Notes:         rec.Notes,
		Voided:        rec.Voided,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

// RecordsFromDomain converts domain records to responses.
func RecordsFromDomain(records []*domain.DomainRecord) []*RecordResponse {
	result := make([]*RecordResponse, len(records))
	for i, rec := range records {
		result[i] = RecordFromDomain(rec)
	}

	return result
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	Kind            string          `json:"kind"`
	ReversedKind    string          `json:"reversed_kind,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signed_amount"`
	Date            time.Time       `json:"date"`
	CategoryRef     string          `json:"category_ref,omitempty"`
	RelatedRecordID string          `json:"related_record_id,omitempty"`
	Description     string          `json:"description,omitempty"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	AccountVersion  int64           `json:"account_version"`
	CreatedAt       time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.LedgerEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		AccountID:       e.AccountID,
		Kind:            string(e.Kind),
		ReversedKind:    string(e.ReversedKind),
		Amount:          e.Amount,
		SignedAmount:    e.SignedAmount(),
		Date:            e.Date,
		CategoryRef:     e.CategoryRef,
		RelatedRecordID: e.RelatedRecordID,
		Description:     e.Description,
		PreviousBalance: e.PreviousBalance,
		CurrentBalance:  e.CurrentBalance,
		AccountVersion:  e.AccountVersion,
		CreatedAt:       e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.LedgerEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}

	return result
}

// BalanceResponse reports a point-in-time balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	At        time.Time       `json:"at"`
	Balance   decimal.Decimal `json:"balance"`
}

// DriftResponse reports one inconsistent account.
type DriftResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	EntrySum  decimal.Decimal `json:"entry_sum"`
}

// ConsistencyResponse reports the result of a ledger consistency check.
type ConsistencyResponse struct {
	Consistent bool             `json:"consistent"`
	Drifts     []*DriftResponse `json:"drifts,omitempty"`
}

// ConsistencyFromDrifts converts drift results to a response.
func ConsistencyFromDrifts(drifts []usecase.AccountDrift) *ConsistencyResponse {
	resp := &ConsistencyResponse{Consistent: len(drifts) == 0}
	for _, d := range drifts {
		resp.Drifts = append(resp.Drifts, &DriftResponse{
			AccountID: d.AccountID,
			Balance:   d.Balance,
			EntrySum:  d.EntrySum,
		})
	}

	return resp
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
