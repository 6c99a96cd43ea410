package model

import "github.com/shopspring/decimal"

// RawTransaction represents one row of a raw procurement transactions CSV.
// All identifying fields arrive as text and may be blank or malformed.
type RawTransaction struct {
	InvoiceID      string
	ContractTitle  string
	Provider       string
	InvoiceAmount  string
	InvoiceDate    string
	ContractNumber string
}

// TransactionRecord is the working record for one invoice as it moves
// through the cleaning pipeline. Normalizers and resolvers fill in the
// cleaned values and outcomes in pipeline order; the issue ledger fills the
// two field sets; the risk model fills the scores. After scoring the record
// is read-only.
type TransactionRecord struct {
	Raw RawTransaction

	CleanProvider   string
	ProviderOutcome Outcome

	// CleanAmount is invalid when the amount could not be parsed; the raw
	// text is retained in Raw.InvoiceAmount.
	CleanAmount   decimal.NullDecimal
	AmountOutcome Outcome

	CleanDate   string // ISO YYYY-MM-DD when resolved
	DateOutcome Outcome

	CleanTitle   string
	TitleOutcome Outcome

	CleanNumber   string
	NumberOutcome Outcome

	FailedFields   []FieldKind
	ModifiedFields []FieldKind

	RiskScore       int
	DataQualityRisk int
	ContractRisk    int
	FinancialRisk   int
}

// Outcome returns the outcome flag recorded for a field.
func (t *TransactionRecord) Outcome(f FieldKind) Outcome {
	switch f {
	case FieldProvider:
		return t.ProviderOutcome
	case FieldAmount:
		return t.AmountOutcome
	case FieldDate:
		return t.DateOutcome
	case FieldTitle:
		return t.TitleOutcome
	case FieldNumber:
		return t.NumberOutcome
	}
	return ""
}

// Key returns the registry lookup key built from the cleaned fields.
func (t *TransactionRecord) Key() ContractKey {
	return ContractKey{Provider: t.CleanProvider, Title: t.CleanTitle, Number: t.CleanNumber}
}
