package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/domain"
	"github.com/iho/finbook/internal/usecase"
)

// MovementHandler handles movement-related HTTP requests. Each endpoint maps
// to one movement kind; the body shape is shared.
type MovementHandler struct {
	movementUC *usecase.MovementUseCase
}

// NewMovementHandler creates a new MovementHandler.
func NewMovementHandler(movementUC *usecase.MovementUseCase) *MovementHandler {
	return &MovementHandler{movementUC: movementUC}
}

// RecordIncome records income into an account.
func (h *MovementHandler) RecordIncome(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMovement(w, r)
	if !ok {
		return
	}

	result, err := h.movementUC.RecordIncome(r.Context(), usecase.RecordIncomeInput{
		AccountID: req.AccountID,
		SourceRef: req.SourceRef,
		Amount:    req.Amount,
		Date:      req.EffectiveDate(),
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record income", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// RecordExpense records an expense against an account.
func (h *MovementHandler) RecordExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMovement(w, r)
	if !ok {
		return
	}

	result, err := h.movementUC.RecordExpense(r.Context(), usecase.RecordExpenseInput{
		AccountID:   req.AccountID,
		CategoryRef: req.CategoryRef,
		Amount:      req.Amount,
		Date:        req.EffectiveDate(),
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// RecordInvestment records an investment from an account.
func (h *MovementHandler) RecordInvestment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMovement(w, r)
	if !ok {
		return
	}

	result, err := h.movementUC.RecordInvestment(r.Context(), usecase.RecordInvestmentInput{
		AccountID:   req.AccountID,
		CategoryRef: req.CategoryRef,
		Amount:      req.Amount,
		Date:        req.EffectiveDate(),
		Notes:       req.Notes,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record investment", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// RecordCreditUsage records usage of a credit account.
func (h *MovementHandler) RecordCreditUsage(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeMovement(w, r)
	if !ok {
		return
	}

	result, err := h.movementUC.RecordCreditUsage(r.Context(), usecase.RecordCreditUsageInput{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Date:      req.EffectiveDate(),
		Notes:     req.Notes,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record credit usage", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// PerformTransfer moves funds between two accounts.
func (h *MovementHandler) PerformTransfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.movementUC.PerformTransfer(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to perform transfer", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

func decodeMovement(w http.ResponseWriter, r *http.Request) (*dto.MovementRequest, bool) {
	var req dto.MovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return nil, false
	}

	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return nil, false
	}

	if err := domain.ValidateAmount(req.Amount); err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return nil, false
	}

	return &req, true
}
