package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds. "thu" is an income entry, "chi" an expense entry.
const (
	KindThu = "thu"
	KindChi = "chi"
)

// Transaction represents a thu/chi ledger entry. The account it belongs to
// is identified only by the free-text AccountLabel, there is no foreign key.
type Transaction struct {
	ID           int64             `json:"id"`
	UserID       int64             `json:"user_id"`
	Kind         string            `json:"kind"`
	AccountLabel string            `json:"account_label"`
	Date         time.Time         `json:"date"`
	Note         string            `json:"note"`
	Items        []TransactionItem `json:"items"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TransactionItem is a single line of a transaction. Amount may be null in
// the source data; a nil amount counts as zero.
type TransactionItem struct {
	ID            int64            `json:"id"`
	TransactionID int64            `json:"transaction_id"`
	Title         string           `json:"title"`
	Amount        *decimal.Decimal `json:"amount"`
}

// Total sums the item amounts, treating missing amounts as zero.
func (t *Transaction) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range t.Items {
		if item.Amount != nil {
			total = total.Add(*item.Amount)
		}
	}
	return total
}

// SignedTotal returns the net effect of the transaction on a balance:
// positive for thu, negative for chi.
func (t *Transaction) SignedTotal() decimal.Decimal {
	total := t.Total()
	if t.Kind == KindChi {
		return total.Neg()
	}
	return total
}
