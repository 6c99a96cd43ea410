// Package transactions reads and writes the transaction data files: raw
// batches, the rolling cleaned master, and the risk-scored output.
package transactions

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/procwatch-dev/procwatch/internal/model"
)

// RawHeader is the CSV header for raw transaction batches.
const RawHeader = "InvoiceID,ContractTitle,Provider,InvoiceAmount,InvoiceDate,ContractNumber"

const (
	rawNumFields = 6
	rawColID     = 0
	rawColTitle  = 1
	rawColProv   = 2
	rawColAmount = 3
	rawColDate   = 4
	rawColNumber = 5
)

// CleanHeader is the CSV header for the rolling cleaned master file.
const CleanHeader = "InvoiceID,FailedFields,ModifiedFields,Provider_Clean,InvoiceAmount_Clean,InvoiceDate_Clean,ContractTitle_Clean,ContractNumber_Clean"

// ScoredHeader is the CSV header for the risk-scored output.
const ScoredHeader = CleanHeader + ",RiskScore,DataQualityRisk,ContractRisk,FinancialRisk"

const (
	cleanNumFields  = 8
	scoredNumFields = 12
	colID           = 0
	colFailed       = 1
	colModified     = 2
	colProv         = 3
	colAmount       = 4
	colDate         = 5
	colTitle        = 6
	colNumber       = 7
	colScore        = 8
	colDataQuality  = 9
	colContract     = 10
	colFinancial    = 11
)

// fieldSetSep joins field names inside a ledger set column.
const fieldSetSep = ";"

// ReadRaw reads a raw transaction batch (header expected).
func ReadRaw(r io.Reader) ([]model.RawTransaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = rawNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	var raws []model.RawTransaction
	for _, rec := range records[1:] {
		raws = append(raws, model.RawTransaction{
			InvoiceID:      rec[rawColID],
			ContractTitle:  rec[rawColTitle],
			Provider:       rec[rawColProv],
			InvoiceAmount:  rec[rawColAmount],
			InvoiceDate:    rec[rawColDate],
			ContractNumber: rec[rawColNumber],
		})
	}
	return raws, nil
}

// WriteRaw writes a raw transaction batch (including header).
func WriteRaw(w io.Writer, raws []model.RawTransaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(RawHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, raw := range raws {
		row := make([]string, rawNumFields)
		row[rawColID] = raw.InvoiceID
		row[rawColTitle] = raw.ContractTitle
		row[rawColProv] = raw.Provider
		row[rawColAmount] = raw.InvoiceAmount
		row[rawColDate] = raw.InvoiceDate
		row[rawColNumber] = raw.ContractNumber
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalCleaned converts a record to a cleaned-master CSV row. An
// unresolved amount falls back to the raw text so nothing is lost.
func MarshalCleaned(rec model.TransactionRecord) []string {
	row := make([]string, cleanNumFields)
	row[colID] = rec.Raw.InvoiceID
	row[colFailed] = joinFields(rec.FailedFields)
	row[colModified] = joinFields(rec.ModifiedFields)
	row[colProv] = rec.CleanProvider
	if rec.CleanAmount.Valid {
		row[colAmount] = rec.CleanAmount.Decimal.String()
	} else {
		row[colAmount] = rec.Raw.InvoiceAmount
	}
	row[colDate] = rec.CleanDate
	row[colTitle] = rec.CleanTitle
	row[colNumber] = rec.CleanNumber
	return row
}

// UnmarshalCleaned converts a cleaned-master CSV row back to a record. The
// per-field outcome flags are not persisted; the ledger sets carry what the
// risk model needs.
func UnmarshalCleaned(record []string) (model.TransactionRecord, error) {
	if len(record) < cleanNumFields {
		return model.TransactionRecord{}, fmt.Errorf("expected at least %d fields, got %d", cleanNumFields, len(record))
	}

	rec := model.TransactionRecord{
		Raw:            model.RawTransaction{InvoiceID: record[colID]},
		FailedFields:   splitFields(record[colFailed]),
		ModifiedFields: splitFields(record[colModified]),
		CleanProvider:  record[colProv],
		CleanDate:      record[colDate],
		CleanTitle:     record[colTitle],
		CleanNumber:    record[colNumber],
	}

	if amount, err := decimal.NewFromString(record[colAmount]); err == nil && record[colAmount] != "" {
		rec.CleanAmount = decimal.NullDecimal{Decimal: amount, Valid: true}
	} else {
		rec.Raw.InvoiceAmount = record[colAmount]
	}
	return rec, nil
}

// MarshalScored converts a scored record to a CSV row.
func MarshalScored(rec model.TransactionRecord) []string {
	row := make([]string, scoredNumFields)
	copy(row, MarshalCleaned(rec))
	row[colScore] = strconv.Itoa(rec.RiskScore)
	row[colDataQuality] = strconv.Itoa(rec.DataQualityRisk)
	row[colContract] = strconv.Itoa(rec.ContractRisk)
	row[colFinancial] = strconv.Itoa(rec.FinancialRisk)
	return row
}

// UnmarshalScored converts a scored CSV row back to a record.
func UnmarshalScored(record []string) (model.TransactionRecord, error) {
	if len(record) != scoredNumFields {
		return model.TransactionRecord{}, fmt.Errorf("expected %d fields, got %d", scoredNumFields, len(record))
	}

	rec, err := UnmarshalCleaned(record[:cleanNumFields])
	if err != nil {
		return model.TransactionRecord{}, err
	}

	for _, col := range []struct {
		idx  int
		dest *int
		name string
	}{
		{colScore, &rec.RiskScore, "RiskScore"},
		{colDataQuality, &rec.DataQualityRisk, "DataQualityRisk"},
		{colContract, &rec.ContractRisk, "ContractRisk"},
		{colFinancial, &rec.FinancialRisk, "FinancialRisk"},
	} {
		v, err := strconv.Atoi(record[col.idx])
		if err != nil {
			return model.TransactionRecord{}, fmt.Errorf("parsing %s %q: %w", col.name, record[col.idx], err)
		}
		*col.dest = v
	}
	return rec, nil
}

func joinFields(fields []model.FieldKind) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = string(f)
	}
	return strings.Join(parts, fieldSetSep)
}

func splitFields(s string) []model.FieldKind {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, fieldSetSep)
	fields := make([]model.FieldKind, len(parts))
	for i, p := range parts {
		fields[i] = model.FieldKind(p)
	}
	return fields
}
