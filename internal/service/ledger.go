package service

import (
	"github.com/minhlp/rental-service/internal/models"
	"github.com/shopspring/decimal"
)

// SumEntries totals the given ledger entries into inflow (thu) and outflow
// (chi) figures. Both values come back as positive magnitudes. Line items
// with a missing amount count as zero. All arithmetic is decimal; balances
// are audited currency values and must not pick up float drift.
func SumEntries(entries []models.Transaction) (inflow, outflow decimal.Decimal) {
	inflow, outflow = decimal.Zero, decimal.Zero
	for i := range entries {
		total := entries[i].Total()
		if entries[i].Kind == models.KindChi {
			outflow = outflow.Add(total)
		} else {
			inflow = inflow.Add(total)
		}
	}
	return inflow, outflow
}

// NetDelta returns inflow minus outflow for the given entries.
func NetDelta(entries []models.Transaction) decimal.Decimal {
	inflow, outflow := SumEntries(entries)
	return inflow.Sub(outflow)
}
