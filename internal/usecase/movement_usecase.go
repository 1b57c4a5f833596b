package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finbook/internal/domain"
)

// MovementUseCase exposes the user-facing operations. Each method is a thin
// builder: it assembles the MovementRequest and hands it to the coordinator,
// performing no I/O of its own beyond cache invalidation after commit.
type MovementUseCase struct {
	coordinator *Coordinator
	cache       Cache
}

// NewMovementUseCase creates a new MovementUseCase.
func NewMovementUseCase(coordinator *Coordinator) *MovementUseCase {
	return &MovementUseCase{coordinator: coordinator}
}

// WithCache enables account snapshot invalidation after commits.
func (uc *MovementUseCase) WithCache(cache Cache) *MovementUseCase {
	uc.cache = cache
	return uc
}

// RecordIncomeInput represents input for recording income.
type RecordIncomeInput struct {
	AccountID string
	SourceRef string
	Amount    decimal.Decimal
	Date      time.Time
	Notes     string
}

// RecordIncome credits the account with income from a source.
func (uc *MovementUseCase) RecordIncome(ctx context.Context, input RecordIncomeInput) (*domain.MovementResult, error) {
	req := domain.NewIncomeMovement(input.AccountID, input.SourceRef, input.Amount, input.Date, input.Notes)
	return uc.execute(ctx, req)
}

// RecordExpenseInput represents input for recording an expense.
type RecordExpenseInput struct {
	AccountID   string
	CategoryRef string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
}

// RecordExpense debits the account, subject to the insufficient-funds rule.
func (uc *MovementUseCase) RecordExpense(ctx context.Context, input RecordExpenseInput) (*domain.MovementResult, error) {
	req := domain.NewExpenseMovement(input.AccountID, input.CategoryRef, input.Amount, input.Date, input.Notes)
	return uc.execute(ctx, req)
}

// RecordInvestmentInput represents input for recording an investment.
type RecordInvestmentInput struct {
	AccountID   string
	CategoryRef string
	Amount      decimal.Decimal
	Date        time.Time
	Notes       string
}

// RecordInvestment debits the account for an investment.
func (uc *MovementUseCase) RecordInvestment(ctx context.Context, input RecordInvestmentInput) (*domain.MovementResult, error) {
	req := domain.NewInvestmentMovement(input.AccountID, input.CategoryRef, input.Amount, input.Date, input.Notes)
	return uc.execute(ctx, req)
}

// RecordCreditUsageInput represents input for recording credit usage.
type RecordCreditUsageInput struct {
	AccountID string
	Amount    decimal.Decimal
	Date      time.Time
	Notes     string
}

// RecordCreditUsage debits a credit account, subject to the credit-limit rule.
func (uc *MovementUseCase) RecordCreditUsage(ctx context.Context, input RecordCreditUsageInput) (*domain.MovementResult, error) {
	req := domain.NewCreditUsageMovement(input.AccountID, input.Amount, input.Date, input.Notes)
	return uc.execute(ctx, req)
}

// PerformTransferInput represents input for a transfer between accounts.
type PerformTransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Date          time.Time
	Notes         string
}

// PerformTransfer moves funds between two accounts as a single movement:
// both legs validate and commit together.
func (uc *MovementUseCase) PerformTransfer(ctx context.Context, input PerformTransferInput) (*domain.MovementResult, error) {
	req := domain.NewTransferMovement(input.FromAccountID, input.ToAccountID, input.Amount, input.Date, input.Notes)
	return uc.execute(ctx, req)
}

func (uc *MovementUseCase) execute(ctx context.Context, req domain.MovementRequest) (*domain.MovementResult, error) {
	result, err := uc.coordinator.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		for _, id := range req.AccountIDs() {
			_ = uc.cache.Delete(ctx, accountCacheKey(id))
		}
	}

	return result, nil
}
