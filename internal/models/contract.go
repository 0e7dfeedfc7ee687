package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract statuses
const (
	ContractActive     = "active"
	ContractTerminated = "terminated"
)

// Contract represents a rental contract for an apartment
type Contract struct {
	ID            int64           `json:"id"`
	ApartmentID   int64           `json:"apartment_id"`
	TenantName    string          `json:"tenant_name"`
	TenantPhone   string          `json:"tenant_phone"`
	StartDate     time.Time       `json:"start_date"`
	EndDate       time.Time       `json:"end_date"`
	MonthlyRent   decimal.Decimal `json:"monthly_rent"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
