package service

import (
	"testing"

	"github.com/minhlp/rental-service/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSumEntries(t *testing.T) {
	entries := []models.Transaction{
		entry(models.KindThu, "a", "2024-01-01", "100", "50"),
		entry(models.KindChi, "a", "2024-01-01", "30"),
		entry(models.KindThu, "a", "2024-01-02", "20"),
	}

	inflow, outflow := SumEntries(entries)
	assert.True(t, inflow.Equal(dec("170")), "inflow = %s", inflow)
	assert.True(t, outflow.Equal(dec("30")), "outflow = %s", outflow)
	assert.True(t, NetDelta(entries).Equal(dec("140")))
}

func TestSumEntriesEmpty(t *testing.T) {
	inflow, outflow := SumEntries(nil)
	assert.True(t, inflow.IsZero())
	assert.True(t, outflow.IsZero())
	assert.True(t, NetDelta(nil).IsZero())
}

func TestSumEntriesNilAmounts(t *testing.T) {
	// A line item without an amount counts as zero, not an error.
	txn := entry(models.KindThu, "a", "2024-01-01", "100")
	txn.Items = append(txn.Items, models.TransactionItem{Title: "missing amount"})

	inflow, outflow := SumEntries([]models.Transaction{txn})
	assert.True(t, inflow.Equal(dec("100")))
	assert.True(t, outflow.IsZero())
}

func TestSumEntriesDecimalPrecision(t *testing.T) {
	// 0.1 + 0.2 must be exactly 0.3; these are audited currency values.
	entries := []models.Transaction{
		entry(models.KindThu, "a", "2024-01-01", "0.1"),
		entry(models.KindThu, "a", "2024-01-01", "0.2"),
	}
	inflow, _ := SumEntries(entries)
	assert.True(t, inflow.Equal(dec("0.3")), "inflow = %s", inflow)
}
