package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/usecase"
)

// RecordHandler handles record-related HTTP requests, including reversals.
type RecordHandler struct {
	recordUC *usecase.RecordUseCase
	entryUC  *usecase.EntryUseCase
	reversal *usecase.ReversalEngine
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(recordUC *usecase.RecordUseCase, entryUC *usecase.EntryUseCase, reversal *usecase.ReversalEngine) *RecordHandler {
	return &RecordHandler{
		recordUC: recordUC,
		entryUC:  entryUC,
		reversal: reversal,
	}
}

// Get returns a record by ID.
func (h *RecordHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.recordUC.GetRecord(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get record", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// Update edits the non-financial details of a record.
func (h *RecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	record, err := h.recordUC.UpdateRecordDetails(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update record", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordFromDomain(record))
}

// Reverse voids a record and restores every balance it touched.
func (h *RecordHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// The body is optional; a bare POST reverses with no notes.
	var req dto.ReverseRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.reversal.Reverse(r.Context(), usecase.ReverseInput{
		RecordID: id,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reverse record", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.MovementFromResult(result))
}

// ListByAccount lists the records touching an account, either side of a
// transfer included.
func (h *RecordHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	records, err := h.recordUC.ListRecordsByAccount(r.Context(), usecase.ListRecordsByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list records", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RecordsFromDomain(records))
}

// ListEntries returns the ledger entries written for a record, originals
// and reversal entries alike.
func (h *RecordHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := h.entryUC.ListEntriesByRecord(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}
