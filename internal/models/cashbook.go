package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashbookRow is one day of an account's cashbook: starting balance,
// the day's flows and the resulting ending balance.
type CashbookRow struct {
	Date            time.Time       `json:"date"`
	AccountID       int64           `json:"account_id"`
	AccountLabel    string          `json:"account_label"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	TotalInflow     decimal.Decimal `json:"total_inflow"`
	TotalOutflow    decimal.Decimal `json:"total_outflow"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
}

// CashbookSnapshot is a persisted cashbook row, written once per
// (date, account) by the nightly job and never mutated afterwards.
// AccountID is nullable so the row survives deletion of the account;
// AccountLabel keeps the display label as it was at snapshot time.
type CashbookSnapshot struct {
	ID              int64           `json:"id"`
	Date            time.Time       `json:"date"`
	AccountID       *int64          `json:"account_id"`
	AccountLabel    string          `json:"account_label"`
	StartingBalance decimal.Decimal `json:"starting_balance"`
	TotalInflow     decimal.Decimal `json:"total_inflow"`
	TotalOutflow    decimal.Decimal `json:"total_outflow"`
	EndingBalance   decimal.Decimal `json:"ending_balance"`
	CreatedAt       time.Time       `json:"created_at"`
}
