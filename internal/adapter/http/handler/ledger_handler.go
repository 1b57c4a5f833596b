package handler

import (
	"errors"
	"net/http"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/usecase"
)

// LedgerHandler handles ledger consistency HTTP requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CheckConsistency verifies that every account balance equals the sum of its
// signed ledger entries. Drift is reported in the body, not as an HTTP error.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	drifts, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromDrifts(drifts))
}
