// Package scrape ingests the contract registry from the published tender
// table.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/procwatch-dev/procwatch/internal/model"
)

// tenderTableSelector matches the contracts table on the tender page.
const tenderTableSelector = "table.cb-table tr"

// numColumns is the expected layout: title, supplier, number, annual
// value, expiry.
const numColumns = 5

// Fetch downloads the tender page and parses its contract table.
func Fetch(ctx context.Context, url string, timeout time.Duration, unit decimal.Decimal) ([]model.Contract, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching tender page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching tender page: unexpected status %s", resp.Status)
	}

	return ParseHTML(resp.Body, unit)
}

// ParseHTML extracts contracts from tender-page HTML. Rows that do not
// have the expected five columns (headers, spacers) are skipped.
func ParseHTML(r io.Reader, unit decimal.Decimal) ([]model.Contract, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing tender page: %w", err)
	}

	var contracts []model.Contract
	doc.Find(tenderTableSelector).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() != numColumns {
			return
		}

		text := make([]string, numColumns)
		cells.Each(func(i int, cell *goquery.Selection) {
			text[i] = strings.TrimSpace(cell.Text())
		})

		low, high := ParseAnnualValue(text[3], unit)
		contracts = append(contracts, model.Contract{
			Title:           text[0],
			Provider:        text[1],
			Number:          text[2],
			AnnualValueLow:  low,
			AnnualValueHigh: high,
			ExpiryDate:      text[4],
		})
	})
	return contracts, nil
}

// ParseAnnualValue converts published annual value text into numeric
// bounds: "$1 to 2 million" becomes a range, "Above $2 million" an
// open-ended lower bound, "$3 million" a fixed value. Unparseable text
// yields invalid bounds rather than an error.
func ParseAnnualValue(raw string, unit decimal.Decimal) (low, high decimal.NullDecimal) {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, "million", "")
	cleaned = strings.TrimSpace(cleaned)

	switch {
	case strings.Contains(cleaned, " to "):
		parts := strings.SplitN(cleaned, " to ", 2)
		lo, err1 := decimal.NewFromString(strings.TrimSpace(parts[0]))
		hi, err2 := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err1 != nil || err2 != nil {
			return decimal.NullDecimal{}, decimal.NullDecimal{}
		}
		return nullDec(lo.Mul(unit)), nullDec(hi.Mul(unit))

	case strings.Contains(cleaned, "Above"):
		text := strings.TrimSpace(strings.ReplaceAll(cleaned, "Above", ""))
		lo, err := decimal.NewFromString(text)
		if err != nil {
			return decimal.NullDecimal{}, decimal.NullDecimal{}
		}
		return nullDec(lo.Mul(unit)), decimal.NullDecimal{}

	default:
		v, err := decimal.NewFromString(cleaned)
		if err != nil {
			return decimal.NullDecimal{}, decimal.NullDecimal{}
		}
		fixed := nullDec(v.Mul(unit))
		return fixed, fixed
	}
}

func nullDec(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
