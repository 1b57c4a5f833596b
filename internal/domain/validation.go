package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidAccountKind = errors.New("invalid account kind")
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MaxMovementAmount    = "1000000000000" // 1 trillion
)

// ValidateMovement evaluates the business rules for one leg against the
// just-read account snapshot. It has no side effects; the coordinator aborts
// before any write on the first rejection.
func ValidateMovement(acc *Account, leg Leg) error {
	if acc == nil {
		return ErrAccountNotFound
	}

	if !acc.Active {
		return fmt.Errorf("%w: %s", ErrAccountInactive, acc.ID)
	}

	newBalance := acc.ProjectedBalance(leg.Delta())

	switch leg.Kind {
	case KindExpense, KindInvestment, KindTransferOut:
		if !acc.IsCredit() && newBalance.IsNegative() {
			return fmt.Errorf("%w: short %s on account %s",
				ErrInsufficientFunds, newBalance.Neg(), acc.ID)
		}

	case KindCreditUsage:
		if !acc.IsCredit() {
			return fmt.Errorf("%w: credit usage requires a credit account, %s is %s",
				ErrInvalidAccountKind, acc.ID, acc.Kind)
		}

		if acc.CreditLimit.IsPositive() && newBalance.Abs().GreaterThan(acc.CreditLimit) {
			return fmt.Errorf("%w: limit %s, attempted balance %s",
				ErrCreditLimitExceeded, acc.CreditLimit, newBalance)
		}
	}

	return nil
}

// ValidateAccountName validates an account display name.
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateAmount bounds a movement amount.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxMovementAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxMovementAmount)
	}

	return nil
}

// ValidatePagination normalizes pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
