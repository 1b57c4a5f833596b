package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMovementKind_Sign(t *testing.T) {
	tests := []struct {
		kind MovementKind
		sign int
	}{
		{KindIncome, 1},
		{KindTransferIn, 1},
		{KindAdjustment, 1},
		{KindExpense, -1},
		{KindInvestment, -1},
		{KindTransferOut, -1},
		{KindCreditUsage, -1},
		{KindReversal, 0},
		{MovementKind("bogus"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Sign(); got != tt.sign {
				t.Errorf("Sign(%s) = %d, want %d", tt.kind, got, tt.sign)
			}
		})
	}
}

func TestReversalSign(t *testing.T) {
	tests := []struct {
		reversed MovementKind
		sign     int
	}{
		{KindExpense, 1},
		{KindInvestment, 1},
		{KindTransferOut, 1},
		{KindCreditUsage, 1},
		{KindIncome, -1},
		{KindTransferIn, -1},
		{KindAdjustment, -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.reversed), func(t *testing.T) {
			if got := ReversalSign(tt.reversed); got != tt.sign {
				t.Errorf("ReversalSign(%s) = %d, want %d", tt.reversed, got, tt.sign)
			}
		})
	}
}

func TestLeg_Delta(t *testing.T) {
	amount := decimal.NewFromInt(25)

	tests := []struct {
		name string
		leg  Leg
		want decimal.Decimal
	}{
		{
			name: "income adds",
			leg:  Leg{AccountID: "a", Kind: KindIncome, Amount: amount},
			want: amount,
		},
		{
			name: "expense subtracts",
			leg:  Leg{AccountID: "a", Kind: KindExpense, Amount: amount},
			want: amount.Neg(),
		},
		{
			name: "reversal of expense adds back",
			leg:  Leg{AccountID: "a", Kind: KindReversal, ReversedKind: KindExpense, Amount: amount},
			want: amount,
		},
		{
			name: "reversal of credit usage adds back",
			leg:  Leg{AccountID: "a", Kind: KindReversal, ReversedKind: KindCreditUsage, Amount: amount},
			want: amount,
		},
		{
			name: "reversal of income subtracts",
			leg:  Leg{AccountID: "a", Kind: KindReversal, ReversedKind: KindIncome, Amount: amount},
			want: amount.Neg(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.leg.Delta(); !got.Equal(tt.want) {
				t.Errorf("Delta() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestMovementRequest_Validate(t *testing.T) {
	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		request MovementRequest
		wantErr error
	}{
		{
			name:    "valid income",
			request: NewIncomeMovement("acc-1", "salary", decimal.NewFromInt(100), date, ""),
			wantErr: nil,
		},
		{
			name:    "valid transfer",
			request: NewTransferMovement("acc-1", "acc-2", decimal.NewFromInt(100), date, ""),
			wantErr: nil,
		},
		{
			name:    "same account transfer rejected",
			request: NewTransferMovement("acc-1", "acc-1", decimal.NewFromInt(100), date, ""),
			wantErr: ErrSameAccountTransfer,
		},
		{
			name:    "zero amount rejected",
			request: NewExpenseMovement("acc-1", "food", decimal.Zero, date, ""),
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "negative amount rejected",
			request: NewExpenseMovement("acc-1", "food", decimal.NewFromInt(-5), date, ""),
			wantErr: ErrInvalidAmount,
		},
		{
			name: "reversal without reversed kind rejected",
			request: MovementRequest{
				Legs: []Leg{{AccountID: "acc-1", Kind: KindReversal, Amount: decimal.NewFromInt(10)}},
			},
			wantErr: ErrInvalidMovementKind,
		},
		{
			name:    "no legs rejected",
			request: MovementRequest{},
			wantErr: ErrInvalidMovementKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewReversalMovement_Transfer(t *testing.T) {
	rec := &DomainRecord{
		ID:            "rec-1",
		Kind:          KindTransferOut,
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.NewFromInt(40),
	}

	req := NewReversalMovement(rec, time.Now().UTC(), "undo")

	if len(req.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(req.Legs))
	}

	if req.VoidRecordID != "rec-1" {
		t.Errorf("expected VoidRecordID rec-1, got %s", req.VoidRecordID)
	}

	if !req.Legs[0].Delta().Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected from leg to add 40 back, got %s", req.Legs[0].Delta())
	}

	if !req.Legs[1].Delta().Equal(decimal.NewFromInt(-40)) {
		t.Errorf("expected to leg to take 40 back, got %s", req.Legs[1].Delta())
	}
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	entry := &LedgerEntry{Kind: KindCreditUsage, Amount: decimal.NewFromInt(80)}
	if !entry.SignedAmount().Equal(decimal.NewFromInt(-80)) {
		t.Errorf("credit usage entry should be negative, got %s", entry.SignedAmount())
	}

	reversal := &LedgerEntry{Kind: KindReversal, ReversedKind: KindCreditUsage, Amount: decimal.NewFromInt(80)}
	if !reversal.SignedAmount().Equal(decimal.NewFromInt(80)) {
		t.Errorf("reversal of credit usage should be positive, got %s", reversal.SignedAmount())
	}
}
