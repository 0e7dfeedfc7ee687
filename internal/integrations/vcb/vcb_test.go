package vcb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="utf-8"?>
<ExrateList>
  <DateTime>9/1/2026 8:00:00 AM</DateTime>
  <Exrate CurrencyCode="USD" CurrencyName="US DOLLAR " Buy="25,091.00" Transfer="25,121.00" Sell="25,481.00"/>
  <Exrate CurrencyCode="EUR" CurrencyName="EURO" Buy="26,835.41" Transfer="27,106.48" Sell="28,305.05"/>
  <Exrate CurrencyCode="KRW" CurrencyName="SOUTH KOREAN WON" Buy="-" Transfer="17.51" Sell="19.43"/>
  <Source>Joint Stock Commercial Bank for Foreign Trade of Vietnam - Vietcombank</Source>
</ExrateList>`

func TestParseRates(t *testing.T) {
	rates, err := parseRates([]byte(sampleFeed))
	require.NoError(t, err)
	require.Len(t, rates, 3)

	usd := rates[0]
	assert.Equal(t, "USD", usd.CurrencyCode)
	assert.Equal(t, "US DOLLAR", usd.CurrencyName)
	assert.Equal(t, 25091.00, usd.Buy)
	assert.Equal(t, 25121.00, usd.Transfer)
	assert.Equal(t, 25481.00, usd.Sell)

	// An unquoted side comes back as zero rather than an error.
	krw := rates[2]
	assert.Equal(t, 0.0, krw.Buy)
	assert.Equal(t, 17.51, krw.Transfer)
}

func TestParseRatesEmptyDocument(t *testing.T) {
	_, err := parseRates([]byte(`<?xml version="1.0"?><ExrateList></ExrateList>`))
	assert.Error(t, err)
}

func TestParseRatesMalformed(t *testing.T) {
	_, err := parseRates([]byte(`not xml at all <<`))
	assert.Error(t, err)
}
