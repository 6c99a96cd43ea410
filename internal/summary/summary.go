// Package summary aggregates risk-scored transactions into supplier
// spend and compliance summaries for downstream reporting.
package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/procwatch-dev/procwatch/internal/clean"
	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
)

// ComplianceFlag classifies aggregate spend against contract bounds.
type ComplianceFlag string

const (
	ComplianceWithinBounds     ComplianceFlag = "WithinBounds"
	ComplianceOverUpper        ComplianceFlag = "OverUpper"
	ComplianceUnderLower       ComplianceFlag = "UnderLower"
	ComplianceContractMismatch ComplianceFlag = "ContractMismatch"
)

// Row is one supplier-contract-period aggregate. Month is zero for annual
// rows.
type Row struct {
	Provider string
	Title    string
	Number   string
	Year     int
	Month    int

	Spend           decimal.Decimal
	MeanRisk        float64
	MeanDataQuality float64
	MeanContract    float64
	MeanFinancial   float64
	Compliance      ComplianceFlag
}

type groupKey struct {
	provider string
	title    string
	number   string
	year     int
	month    int
}

type accumulator struct {
	spend       decimal.Decimal
	risk        int
	dataQuality int
	contract    int
	financial   int
	count       int
}

// ComputeAnnual aggregates spend and mean risk per supplier-contract-year,
// flagging compliance against the contract's annual value bounds. Records
// without a parseable cleaned date or a valid amount are skipped; they
// already carry their own risk.
func ComputeAnnual(recs []model.TransactionRecord, lookup registry.Lookup) []Row {
	return compute(recs, lookup, false)
}

// ComputeMonthly aggregates per supplier-contract-year-month; bounds are
// prorated to a twelfth of the annual values.
func ComputeMonthly(recs []model.TransactionRecord, lookup registry.Lookup) []Row {
	return compute(recs, lookup, true)
}

func compute(recs []model.TransactionRecord, lookup registry.Lookup, monthly bool) []Row {
	groups := make(map[groupKey]*accumulator)
	for _, rec := range recs {
		if !rec.CleanAmount.Valid {
			continue
		}
		date, ok := clean.ParseDate(rec.CleanDate)
		if !ok {
			continue
		}

		key := groupKey{
			provider: rec.CleanProvider,
			title:    rec.CleanTitle,
			number:   rec.CleanNumber,
			year:     date.Year(),
		}
		if monthly {
			key.month = int(date.Month())
		}

		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{spend: decimal.Zero}
			groups[key] = acc
		}
		acc.spend = acc.spend.Add(rec.CleanAmount.Decimal)
		acc.risk += rec.RiskScore
		acc.dataQuality += rec.DataQualityRisk
		acc.contract += rec.ContractRisk
		acc.financial += rec.FinancialRisk
		acc.count++
	}

	rows := make([]Row, 0, len(groups))
	for key, acc := range groups {
		n := float64(acc.count)
		row := Row{
			Provider:        key.provider,
			Title:           key.title,
			Number:          key.number,
			Year:            key.year,
			Month:           key.month,
			Spend:           acc.spend,
			MeanRisk:        float64(acc.risk) / n,
			MeanDataQuality: float64(acc.dataQuality) / n,
			MeanContract:    float64(acc.contract) / n,
			MeanFinancial:   float64(acc.financial) / n,
		}
		row.Compliance = complianceFor(row, lookup, monthly)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Provider != b.Provider {
			return a.Provider < b.Provider
		}
		if a.Title != b.Title {
			return a.Title < b.Title
		}
		if a.Number != b.Number {
			return a.Number < b.Number
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return rows
}

func complianceFor(row Row, lookup registry.Lookup, monthly bool) ComplianceFlag {
	contract, ok := lookup[model.ContractKey{Provider: row.Provider, Title: row.Title, Number: row.Number}]
	if !ok {
		return ComplianceContractMismatch
	}

	low := contract.AnnualValueLow
	high := contract.AnnualValueHigh
	if monthly {
		twelve := decimal.NewFromInt(12)
		if low.Valid {
			low.Decimal = low.Decimal.Div(twelve)
		}
		if high.Valid {
			high.Decimal = high.Decimal.Div(twelve)
		}
	}

	if high.Valid && row.Spend.GreaterThan(high.Decimal) {
		return ComplianceOverUpper
	}
	if low.Valid && row.Spend.LessThan(low.Decimal) {
		return ComplianceUnderLower
	}
	return ComplianceWithinBounds
}
