// Package generate produces synthetic messy transaction batches seeded from
// the contract registry, for exercising the cleaning pipeline and
// dashboards without real invoice feeds.
package generate

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/procwatch-dev/procwatch/internal/invoiceid"
	"github.com/procwatch-dev/procwatch/internal/model"
)

// Generator builds messy raw transactions from registry contracts. All
// randomness flows from the seeded faker, so a fixed seed reproduces a
// batch exactly.
type Generator struct {
	faker     *gofakeit.Faker
	contracts []model.Contract
	titles    []string
	messProb  float64
	unit      decimal.Decimal
}

// New creates a Generator. messProb is the chance of a deliberately
// missing or mismatched value per field that supports it.
func New(seed uint64, contracts []model.Contract, messProb float64, unit decimal.Decimal) *Generator {
	titleSeen := make(map[string]bool)
	var titles []string
	for _, c := range contracts {
		if !titleSeen[c.Title] {
			titleSeen[c.Title] = true
			titles = append(titles, c.Title)
		}
	}
	return &Generator{
		faker:     gofakeit.New(int64(seed)),
		contracts: contracts,
		titles:    titles,
		messProb:  messProb,
		unit:      unit,
	}
}

// Batch generates n raw transactions with invoice IDs continuing after
// startSeq.
func (g *Generator) Batch(n, startSeq int) []model.RawTransaction {
	raws := make([]model.RawTransaction, 0, n)
	for i := 0; i < n; i++ {
		contract := g.contracts[g.faker.Number(0, len(g.contracts)-1)]

		title := contract.Title
		if g.chance() && len(g.titles) > 0 {
			title = g.titles[g.faker.Number(0, len(g.titles)-1)]
		}

		number := contract.Number
		if g.chance() {
			number = " "
		}

		raws = append(raws, model.RawTransaction{
			InvoiceID:      invoiceid.Format(startSeq + i + 1),
			ContractTitle:  title,
			Provider:       g.messyProvider(contract.Provider),
			InvoiceAmount:  g.messyAmount(),
			InvoiceDate:    g.messyDate(2025, 2030),
			ContractNumber: number,
		})
	}
	return raws
}

func (g *Generator) chance() bool {
	return g.faker.Float64Range(0, 1) < g.messProb
}

// messyProvider returns a realistic variation of an official provider
// name: casing changes, country suffixes, truncation, abbreviation
// substitutions, typos, and spacing damage.
func (g *Generator) messyProvider(provider string) string {
	options := []string{
		provider,
		strings.ToUpper(provider),
		strings.ToLower(provider),
		cases.Title(language.English).String(provider),
		provider + " (AU)",
		provider + " (AUS)",
	}

	if first, _, ok := strings.Cut(provider, " "); ok {
		options = append(options, first)
	}
	if half := len(provider) / 2; half >= 5 {
		options = append(options, provider[:half])
	}

	substitutions := map[string][]string{
		"Limited":       {"Ltd", "LTD"},
		"Pty Ltd":       {"Pty. Ltd.", "P/L"},
		"Management":    {"Mgmt"},
		"International": {"Intl"},
		".":             {"", ","},
	}
	for key, subs := range substitutions {
		if strings.Contains(provider, key) {
			for _, sub := range subs {
				options = append(options, strings.ReplaceAll(provider, key, sub))
			}
		}
	}

	if len(provider) > 4 {
		i := g.faker.Number(0, len(provider)-1)
		options = append(options, provider[:i]+g.faker.Letter()+provider[i+1:])
	}

	if strings.Contains(provider, " ") {
		options = append(options, strings.ReplaceAll(provider, " ", "  "))
		options = append(options, strings.ReplaceAll(provider, " ", ""))
	}

	return options[g.faker.Number(0, len(options)-1)]
}

// messyAmount returns an invoice amount in one of the formats seen in real
// feeds: grouped with a currency symbol, suffixed, millions shorthand,
// plain, or missing.
func (g *Generator) messyAmount() string {
	amount := decimal.NewFromFloat(g.faker.Float64Range(200, 250000)).Round(2)

	if g.chance() {
		return ""
	}

	switch g.faker.Number(0, 3) {
	case 0:
		return "$" + groupThousands(amount)
	case 1:
		return amount.String() + " AUD"
	case 2:
		return amount.Div(g.unit).Round(1).String() + "m"
	default:
		return amount.String()
	}
}

var dateFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-Jan-2006",
	"02 January 2006",
	"06/01/02",
}

// messyDate returns a random date between the years in one of several
// inconsistent formats, or blank.
func (g *Generator) messyDate(startYear, endYear int) string {
	if g.chance() {
		return ""
	}
	start := time.Date(startYear, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, 1, 1, 0, 0, 0, 0, time.UTC)
	d := g.faker.DateRange(start, end)
	return d.Format(dateFormats[g.faker.Number(0, len(dateFormats)-1)])
}

// groupThousands formats a decimal with comma grouping: 12345.67 ->
// "12,345.67".
func groupThousands(d decimal.Decimal) string {
	s := d.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if neg {
		out = "-" + out
	}
	return fmt.Sprintf("%s.%s", out, fracPart)
}
