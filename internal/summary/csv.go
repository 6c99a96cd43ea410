package summary

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// AnnualHeader is the CSV header for annual summary rows.
const AnnualHeader = "Provider,ContractTitle,ContractNumber,Year,AnnualSpend,MeanRiskScore,MeanDataQualityRisk,MeanContractRisk,MeanFinancialRisk,ComplianceFlag"

// MonthlyHeader is the CSV header for monthly summary rows.
const MonthlyHeader = "Provider,ContractTitle,ContractNumber,Year,Month,MonthlySpend,MeanRiskScore,MeanDataQualityRisk,MeanContractRisk,MeanFinancialRisk,ComplianceFlag"

// WriteAnnualCSV writes annual summary rows (including header).
func WriteAnnualCSV(w io.Writer, rows []Row) error {
	return writeCSV(w, AnnualHeader, rows, false)
}

// WriteMonthlyCSV writes monthly summary rows (including header).
func WriteMonthlyCSV(w io.Writer, rows []Row) error {
	return writeCSV(w, MonthlyHeader, rows, true)
}

func writeCSV(w io.Writer, header string, rows []Row, monthly bool) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		rec := []string{row.Provider, row.Title, row.Number, strconv.Itoa(row.Year)}
		if monthly {
			rec = append(rec, strconv.Itoa(row.Month))
		}
		rec = append(rec,
			row.Spend.String(),
			formatMean(row.MeanRisk),
			formatMean(row.MeanDataQuality),
			formatMean(row.MeanContract),
			formatMean(row.MeanFinancial),
			string(row.Compliance),
		)
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func formatMean(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
