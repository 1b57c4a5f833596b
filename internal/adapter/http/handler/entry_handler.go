package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/finbook/internal/adapter/http/dto"
	"github.com/iho/finbook/internal/usecase"
)

// EntryHandler handles ledger-entry HTTP requests.
type EntryHandler struct {
	entryUC *usecase.EntryUseCase
}

// NewEntryHandler creates a new EntryHandler.
func NewEntryHandler(entryUC *usecase.EntryUseCase) *EntryHandler {
	return &EntryHandler{entryUC: entryUC}
}

// ListByAccount returns the ledger entries of an account, newest first.
func (h *EntryHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	entries, err := h.entryUC.ListEntriesByAccount(r.Context(), usecase.ListEntriesByAccountInput{
		AccountID: accountID,
		Limit:     parseIntQuery(r, "limit", 0),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

// HistoricalBalance returns the balance of an account at a point in time,
// reconstructed from the ledger. The instant comes from the "at" query
// parameter in RFC 3339 form and defaults to now.
func (h *EntryHandler) HistoricalBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")

	at := time.Now().UTC()
	if raw := r.URL.Query().Get("at"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'at' timestamp", err.Error())
			return
		}
		at = parsed
	}

	balance, err := h.entryUC.GetHistoricalBalance(r.Context(), accountID, at)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to compute historical balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		At:        at,
		Balance:   balance,
	})
}
