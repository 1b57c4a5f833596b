package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateMovement(t *testing.T) {
	tests := []struct {
		name    string
		account *Account
		leg     Leg
		wantErr error
	}{
		{
			name:    "missing account",
			account: nil,
			leg:     Leg{Kind: KindExpense, Amount: decimal.NewFromInt(10)},
			wantErr: ErrAccountNotFound,
		},
		{
			name:    "archived account",
			account: &Account{ID: "a", Kind: AccountBank, Balance: decimal.NewFromInt(100), Active: false},
			leg:     Leg{AccountID: "a", Kind: KindIncome, Amount: decimal.NewFromInt(10)},
			wantErr: ErrAccountInactive,
		},
		{
			name:    "expense within balance",
			account: &Account{ID: "a", Kind: AccountBank, Balance: decimal.NewFromInt(100), Active: true},
			leg:     Leg{AccountID: "a", Kind: KindExpense, Amount: decimal.NewFromInt(100)},
			wantErr: nil,
		},
		{
			name:    "expense overdraws bank account",
			account: &Account{ID: "a", Kind: AccountBank, Balance: decimal.NewFromInt(30), Active: true},
			leg:     Leg{AccountID: "a", Kind: KindExpense, Amount: decimal.NewFromInt(50)},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "transfer out overdraws cash account",
			account: &Account{ID: "a", Kind: AccountCash, Balance: decimal.NewFromInt(30), Active: true},
			leg:     Leg{AccountID: "a", Kind: KindTransferOut, Amount: decimal.NewFromInt(40)},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "investment overdraws debit account",
			account: &Account{ID: "a", Kind: AccountDebit, Balance: decimal.NewFromInt(5), Active: true},
			leg:     Leg{AccountID: "a", Kind: KindInvestment, Amount: decimal.NewFromInt(10)},
			wantErr: ErrInsufficientFunds,
		},
		{
			name:    "credit account exempt from insufficient funds",
			account: &Account{ID: "a", Kind: AccountCredit, Balance: decimal.Zero, Active: true},
			leg:     Leg{AccountID: "a", Kind: KindExpense, Amount: decimal.NewFromInt(50)},
			wantErr: nil,
		},
		{
			name: "credit usage within limit",
			account: &Account{
				ID: "c", Kind: AccountCredit, Balance: decimal.Zero,
				CreditLimit: decimal.NewFromInt(100), Active: true,
			},
			leg:     Leg{AccountID: "c", Kind: KindCreditUsage, Amount: decimal.NewFromInt(80)},
			wantErr: nil,
		},
		{
			name: "credit usage exceeds limit",
			account: &Account{
				ID: "c", Kind: AccountCredit, Balance: decimal.Zero,
				CreditLimit: decimal.NewFromInt(100), Active: true,
			},
			leg:     Leg{AccountID: "c", Kind: KindCreditUsage, Amount: decimal.NewFromInt(150)},
			wantErr: ErrCreditLimitExceeded,
		},
		{
			name: "credit usage unbounded without configured limit",
			account: &Account{
				ID: "c", Kind: AccountCredit, Balance: decimal.Zero,
				CreditLimit: decimal.Zero, Active: true,
			},
			leg:     Leg{AccountID: "c", Kind: KindCreditUsage, Amount: decimal.NewFromInt(100000)},
			wantErr: nil,
		},
		{
			name:    "credit usage rejected on bank account",
			account: &Account{ID: "a", Kind: AccountBank, Balance: decimal.NewFromInt(100), Active: true},
			leg:     Leg{AccountID: "a", Kind: KindCreditUsage, Amount: decimal.NewFromInt(50)},
			wantErr: ErrInvalidAccountKind,
		},
		{
			name:    "income never rejected for funds",
			account: &Account{ID: "a", Kind: AccountBank, Balance: decimal.Zero, Active: true},
			leg:     Leg{AccountID: "a", Kind: KindIncome, Amount: decimal.NewFromInt(10)},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMovement(tt.account, tt.leg)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}

				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateAccountName(t *testing.T) {
	if err := ValidateAccountName("Main checking"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateAccountName("   "); !errors.Is(err, ErrInvalidAccountName) {
		t.Errorf("expected ErrInvalidAccountName, got %v", err)
	}
}

func TestValidateAmount(t *testing.T) {
	if err := ValidateAmount(decimal.NewFromInt(10)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}

	huge, _ := decimal.NewFromString("2000000000000")
	if err := ValidateAmount(huge); !errors.Is(err, ErrAmountTooLarge) {
		t.Errorf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestAccountKind_Valid(t *testing.T) {
	for _, kind := range []AccountKind{AccountBank, AccountCash, AccountDebit, AccountCredit} {
		if !kind.Valid() {
			t.Errorf("expected %s to be valid", kind)
		}
	}

	if AccountKind("wallet").Valid() {
		t.Error("expected unknown kind to be invalid")
	}
}
