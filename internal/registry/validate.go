package registry

import (
	"fmt"

	"github.com/procwatch-dev/procwatch/internal/model"
)

// ValidationError describes a single defect in a registry record.
type ValidationError struct {
	Row         int // 0-based position in the registry
	Field       string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("contract %d [%s]: %s", e.Row, e.Field, e.Description)
}

// ValidateContracts checks registry records for defects that would poison
// downstream matching: blank identifying fields, inverted value bounds, and
// duplicate (provider, title, number) triples.
func ValidateContracts(contracts []model.Contract) []ValidationError {
	var errs []ValidationError

	seen := make(map[model.ContractKey]int)
	for i, c := range contracts {
		if c.Provider == "" {
			errs = append(errs, ValidationError{Row: i, Field: "service_provider", Description: "blank provider name"})
		}
		if c.Title == "" {
			errs = append(errs, ValidationError{Row: i, Field: "contract_title", Description: "blank contract title"})
		}
		if c.Number == "" {
			errs = append(errs, ValidationError{Row: i, Field: "contract_number", Description: "blank contract number"})
		}

		if c.AnnualValueLow.Valid && c.AnnualValueHigh.Valid &&
			c.AnnualValueLow.Decimal.GreaterThan(c.AnnualValueHigh.Decimal) {
			errs = append(errs, ValidationError{
				Row:   i,
				Field: "annual_value_lower_bound",
				Description: fmt.Sprintf("lower bound %s above upper bound %s",
					c.AnnualValueLow.Decimal, c.AnnualValueHigh.Decimal),
			})
		}

		key := c.Key()
		if prev, dup := seen[key]; dup {
			errs = append(errs, ValidationError{
				Row:         i,
				Field:       "contract_number",
				Description: fmt.Sprintf("duplicate of contract %d (%s / %s / %s)", prev, key.Provider, key.Title, key.Number),
			})
		} else {
			seen[key] = i
		}
	}
	return errs
}
