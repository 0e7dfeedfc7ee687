package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/shopspring/decimal"
)

type transactionItemRequest struct {
	Title  string           `json:"title"`
	Amount *decimal.Decimal `json:"amount"`
}

type transactionRequest struct {
	Kind         string                   `json:"kind"`
	AccountLabel string                   `json:"account_label"`
	Date         string                   `json:"date"`
	Note         string                   `json:"note"`
	Items        []transactionItemRequest `json:"items"`
}

func (req *transactionRequest) toModel() (*models.Transaction, error) {
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		return nil, err
	}
	txn := &models.Transaction{
		Kind:         req.Kind,
		AccountLabel: req.AccountLabel,
		Date:         date,
		Note:         req.Note,
	}
	for _, item := range req.Items {
		txn.Items = append(txn.Items, models.TransactionItem{Title: item.Title, Amount: item.Amount})
	}
	return txn, nil
}

// CreateTransaction handles thu/chi entry creation
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	txn, err := req.toModel()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid transaction date"})
		return
	}

	created, err := h.svc.CreateTransaction(r.Context(), txn)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// ListTransactions lists the authenticated user's entries within a range.
// Defaults to the last 30 days.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from, err := parseDateParam(r, "start", now.AddDate(0, 0, -30))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid start date"})
		return
	}
	to, err := parseDateParam(r, "end", now)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid end date"})
		return
	}

	txns, err := h.svc.ListTransactions(r.Context(), from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txns)
}

// UpdateTransaction updates a thu/chi entry
func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid transaction id"})
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	txn, err := req.toModel()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid transaction date"})
		return
	}
	txn.ID = id

	updated, err := h.svc.UpdateTransaction(r.Context(), txn)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteTransaction removes a thu/chi entry
func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid transaction id"})
		return
	}
	if err := h.svc.DeleteTransaction(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
