package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var million = decimal.NewFromInt(1_000_000)

const tenderHTML = `<html><body>
<table class="cb-table">
  <tr><th>Contract title</th><th>Supplier</th><th>Number</th><th>Annual value</th><th>Expiry</th></tr>
  <tr>
    <td> Aquatic Centre Management </td>
    <td>Victorian YMCA</td>
    <td>4500</td>
    <td>$1 to 2 million</td>
    <td>2025-12-31</td>
  </tr>
  <tr>
    <td>Kerbside Collection</td>
    <td>Cleanaway Waste Management</td>
    <td>3100</td>
    <td>Above $2 million</td>
    <td>2026-06-30</td>
  </tr>
  <tr><td colspan="5">spacer row</td></tr>
</table>
<table><tr><td>other</td><td>table</td><td>is</td><td>ignored</td><td>entirely</td></tr></table>
</body></html>`

func TestParseHTML(t *testing.T) {
	contracts, err := ParseHTML(strings.NewReader(tenderHTML), million)
	require.NoError(t, err)
	require.Len(t, contracts, 2)

	first := contracts[0]
	assert.Equal(t, "Aquatic Centre Management", first.Title)
	assert.Equal(t, "Victorian YMCA", first.Provider)
	assert.Equal(t, "4500", first.Number)
	assert.Equal(t, "2025-12-31", first.ExpiryDate)
	require.True(t, first.AnnualValueLow.Valid)
	require.True(t, first.AnnualValueHigh.Valid)
	assert.True(t, first.AnnualValueLow.Decimal.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, first.AnnualValueHigh.Decimal.Equal(decimal.NewFromInt(2_000_000)))

	second := contracts[1]
	require.True(t, second.AnnualValueLow.Valid)
	assert.True(t, second.AnnualValueLow.Decimal.Equal(decimal.NewFromInt(2_000_000)))
	assert.False(t, second.AnnualValueHigh.Valid)
}

func TestParseHTML_NoTable(t *testing.T) {
	contracts, err := ParseHTML(strings.NewReader("<html><body><p>nothing here</p></body></html>"), million)
	require.NoError(t, err)
	assert.Empty(t, contracts)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(tenderHTML))
	}))
	defer srv.Close()

	contracts, err := Fetch(context.Background(), srv.URL, 5*time.Second, million)
	require.NoError(t, err)
	assert.Len(t, contracts, 2)
}

func TestFetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.URL, 5*time.Second, million)
	assert.Error(t, err)
}

func TestParseAnnualValue_Range(t *testing.T) {
	low, high := ParseAnnualValue("$1 to 2 million", million)
	require.True(t, low.Valid)
	require.True(t, high.Valid)
	assert.True(t, low.Decimal.Equal(decimal.NewFromInt(1_000_000)))
	assert.True(t, high.Decimal.Equal(decimal.NewFromInt(2_000_000)))
}

func TestParseAnnualValue_OpenLowerBound(t *testing.T) {
	low, high := ParseAnnualValue("Above $2 million", million)
	require.True(t, low.Valid)
	assert.True(t, low.Decimal.Equal(decimal.NewFromInt(2_000_000)))
	assert.False(t, high.Valid)
}

func TestParseAnnualValue_FixedValue(t *testing.T) {
	low, high := ParseAnnualValue("$3 million", million)
	require.True(t, low.Valid)
	require.True(t, high.Valid)
	assert.True(t, low.Decimal.Equal(decimal.NewFromInt(3_000_000)))
	assert.True(t, high.Decimal.Equal(low.Decimal))
}

func TestParseAnnualValue_FractionalRange(t *testing.T) {
	low, high := ParseAnnualValue("$0.5 to 1.5 million", million)
	require.True(t, low.Valid)
	require.True(t, high.Valid)
	assert.True(t, low.Decimal.Equal(decimal.NewFromInt(500_000)))
	assert.True(t, high.Decimal.Equal(decimal.NewFromInt(1_500_000)))
}

func TestParseAnnualValue_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "Not disclosed", "$1 to ? million"} {
		low, high := ParseAnnualValue(raw, million)
		assert.False(t, low.Valid, "input %q", raw)
		assert.False(t, high.Valid, "input %q", raw)
	}
}
