package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccountNumber is the synthetic account number assigned to
// auto-created cash accounts.
const CashAccountNumber = "CASH"

// BankAccount represents a bank or cash account owned by a user.
//
// Balance is a cached running total maintained by the balance adjuster.
// It can drift from the figures recomputed out of raw transactions; the
// nightly cashbook snapshot is the authoritative record.
type BankAccount struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"user_id"`
	HolderName    string          `json:"holder_name"`
	AccountNumber string          `json:"account_number"`
	BankName      string          `json:"bank_name"`
	Branch        string          `json:"branch"`
	IsDefault     bool            `json:"is_default"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// DisplayLabel builds the label captured into cashbook rows: bank name,
// account number, optional branch and holder name. The result is fixed at
// call time and does not follow later edits of the account.
func (a *BankAccount) DisplayLabel() string {
	label := a.BankName + " " + a.AccountNumber
	if a.Branch != "" {
		label += " - " + a.Branch
	}
	if a.HolderName != "" {
		label += " - " + a.HolderName
	}
	return label
}
