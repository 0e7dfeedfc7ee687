package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/minhlp/rental-service/internal/models"
)

// CreateBankAccount handles bank account creation
func (h *Handler) CreateBankAccount(w http.ResponseWriter, r *http.Request) {
	var account models.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	created, err := h.svc.CreateBankAccount(r.Context(), &account)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListBankAccounts lists the authenticated user's accounts
func (h *Handler) ListBankAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListBankAccounts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

// UpdateBankAccount updates one of the authenticated user's accounts
func (h *Handler) UpdateBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid account id"})
		return
	}
	var account models.BankAccount
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	account.ID = id

	updated, err := h.svc.UpdateBankAccount(r.Context(), &account)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteBankAccount removes one of the authenticated user's accounts
func (h *Handler) DeleteBankAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid account id"})
		return
	}
	if err := h.svc.DeleteBankAccount(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// GetCashbook returns the daily cashbook over a date range. Defaults to
// the last 30 days.
func (h *Handler) GetCashbook(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start, err := parseDateParam(r, "start", now.AddDate(0, 0, -30))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start date"})
		return
	}
	end, err := parseDateParam(r, "end", now)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end date"})
		return
	}

	rows, err := h.svc.GetCashbook(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// GetCashbookSnapshots returns persisted snapshot rows over a date range
func (h *Handler) GetCashbookSnapshots(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	start, err := parseDateParam(r, "start", now.AddDate(0, 0, -30))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start date"})
		return
	}
	end, err := parseDateParam(r, "end", now)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end date"})
		return
	}

	snaps, err := h.svc.GetCashbookSnapshots(r.Context(), start, end)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snaps)
}

// RunSnapshots triggers a snapshot run, optionally for an explicit date
// (backfill and testing); the date defaults to today.
func (h *Handler) RunSnapshots(w http.ResponseWriter, r *http.Request) {
	var date time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateFormat, raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date"})
			return
		}
		date = parsed
	}

	summary, err := h.svc.RunDailySnapshot(r.Context(), date)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
