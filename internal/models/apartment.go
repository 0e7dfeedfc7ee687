package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Apartment statuses
const (
	ApartmentAvailable = "available"
	ApartmentRented    = "rented"
)

// Apartment represents a rentable unit inside a building
type Apartment struct {
	ID         int64           `json:"id"`
	BuildingID int64           `json:"building_id"`
	Code       string          `json:"code"`
	Floor      int             `json:"floor"`
	Area       float64         `json:"area"`
	RentPrice  decimal.Decimal `json:"rent_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
