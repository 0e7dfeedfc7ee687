package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit represents a deposit receipt tied to a contract. Kind follows the
// thu/chi convention: "thu" when money is received, "chi" when it is
// returned. AccountLabel is free text naming the receiving account.
type Deposit struct {
	ID           int64           `json:"id"`
	ContractID   int64           `json:"contract_id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	AccountLabel string          `json:"account_label"`
	Date         time.Time       `json:"date"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// SignedAmount returns the deposit's effect on a balance: positive for
// thu, negative for chi.
func (d *Deposit) SignedAmount() decimal.Decimal {
	if d.Kind == KindChi {
		return d.Amount.Neg()
	}
	return d.Amount
}
