// Package registry loads the trusted contract registry and builds the
// lookup structures the cleaning pipeline and risk model consult.
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/procwatch-dev/procwatch/internal/model"
)

// contractRecord is the JSON wire form of a contract. Contract numbers are
// published both as strings and bare integers, so they decode via
// json.Number.
type contractRecord struct {
	Title    string              `json:"contract_title"`
	Provider string              `json:"service_provider"`
	Number   json.Number         `json:"contract_number"`
	Low      decimal.NullDecimal `json:"annual_value_lower_bound"`
	High     decimal.NullDecimal `json:"annual_value_upper_bound"`
	Expiry   string              `json:"expiry_date"`
}

// Load reads a contract registry JSON file. A missing or unreadable file is
// a fatal input error for the run.
func Load(path string) ([]model.Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading contract registry: %w", err)
	}

	var records []contractRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing contract registry: %w", err)
	}

	contracts := make([]model.Contract, 0, len(records))
	for _, r := range records {
		contracts = append(contracts, model.Contract{
			Title:           r.Title,
			Provider:        r.Provider,
			Number:          r.Number.String(),
			AnnualValueLow:  r.Low,
			AnnualValueHigh: r.High,
			ExpiryDate:      r.Expiry,
		})
	}
	return contracts, nil
}

// Save writes contracts to a registry JSON file.
func Save(path string, contracts []model.Contract) error {
	data, err := json.MarshalIndent(contracts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling contract registry: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing contract registry: %w", err)
	}
	return nil
}

// Ref is one contract a provider holds, as seen by the cross-field
// resolvers.
type Ref struct {
	Title  string
	Number string
}

// Index maps provider names to the ordered list of contracts they hold.
// Order follows the registry file, so "first match" and "unique match"
// rules are reproducible. Built once per batch and read-only afterward.
type Index struct {
	providers  []string
	byProvider map[string][]Ref
}

// BuildIndex groups contracts by exact provider name. An empty registry
// yields an empty index; downstream lookups then degrade to no-match.
func BuildIndex(contracts []model.Contract) *Index {
	idx := &Index{byProvider: make(map[string][]Ref)}
	for _, c := range contracts {
		if _, seen := idx.byProvider[c.Provider]; !seen {
			idx.providers = append(idx.providers, c.Provider)
		}
		idx.byProvider[c.Provider] = append(idx.byProvider[c.Provider], Ref{Title: c.Title, Number: c.Number})
	}
	return idx
}

// Providers returns all provider names in registry order.
func (i *Index) Providers() []string {
	return i.providers
}

// Contracts returns the contracts held by a provider, in registry order.
func (i *Index) Contracts(provider string) []Ref {
	return i.byProvider[provider]
}

// HasProvider reports whether a provider appears in the registry.
func (i *Index) HasProvider(provider string) bool {
	_, ok := i.byProvider[provider]
	return ok
}

// Len returns the number of distinct providers.
func (i *Index) Len() int {
	return len(i.providers)
}

// Lookup resolves a (provider, title, number) triple to its contract.
type Lookup map[model.ContractKey]model.Contract

// BuildLookup indexes contracts by their identifying triple. Contracts
// missing a provider or title are skipped, matching how the registry is
// trusted downstream.
func BuildLookup(contracts []model.Contract) Lookup {
	m := make(Lookup, len(contracts))
	for _, c := range contracts {
		if c.Provider == "" || c.Title == "" {
			continue
		}
		m[c.Key()] = c
	}
	return m
}
