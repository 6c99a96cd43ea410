package model

import "github.com/shopspring/decimal"

// Contract is one row of the trusted contract registry. It is created by the
// registry ingestion step and read-only everywhere else.
type Contract struct {
	Title           string              `json:"contract_title"`
	Provider        string              `json:"service_provider"`
	Number          string              `json:"contract_number"`
	AnnualValueLow  decimal.NullDecimal `json:"annual_value_lower_bound"`
	AnnualValueHigh decimal.NullDecimal `json:"annual_value_upper_bound"`
	ExpiryDate      string              `json:"expiry_date"` // as published, possibly unparseable
}

// ContractKey identifies a contract by the (provider, title, number) triple
// the risk model matches against.
type ContractKey struct {
	Provider string
	Title    string
	Number   string
}

// Key returns the lookup key for this contract.
func (c Contract) Key() ContractKey {
	return ContractKey{Provider: c.Provider, Title: c.Title, Number: c.Number}
}
