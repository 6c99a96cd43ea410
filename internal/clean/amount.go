package clean

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/procwatch-dev/procwatch/internal/model"
)

// Amount parses a messy invoice amount into a decimal. It handles currency
// symbols, grouping separators, and millions shorthand ("1.2m", "1.2 mil",
// "1.2 million", scaled by unit). A missing or unparseable amount is
// unresolved with an invalid decimal; the raw text stays on the record.
func Amount(raw string, unit decimal.Decimal) (decimal.NullDecimal, model.Outcome) {
	original := strings.TrimSpace(raw)
	if original == "" {
		return decimal.NullDecimal{}, model.OutcomeUnresolved
	}

	lower := strings.ToLower(original)

	if strings.Contains(lower, "m") {
		stripped := stripNonNumeric(lower)
		value, err := decimal.NewFromString(stripped)
		if err != nil {
			return decimal.NullDecimal{}, model.OutcomeUnresolved
		}
		return decimal.NullDecimal{Decimal: value.Mul(unit), Valid: true}, model.OutcomeChanged
	}

	stripped := stripNonNumeric(lower)
	stripped = collapseDots(stripped)

	value, err := decimal.NewFromString(stripped)
	if err != nil {
		return decimal.NullDecimal{}, model.OutcomeUnresolved
	}

	outcome := model.OutcomeUnchanged
	if stripped != original {
		outcome = model.OutcomeChanged
	}
	return decimal.NullDecimal{Decimal: value, Valid: true}, outcome
}

// stripNonNumeric drops everything but digits and decimal points.
func stripNonNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' || r == '.' {
			return r
		}
		return -1
	}, s)
}

// collapseDots treats all but the last dot as thousands separators:
// "1.234.56" -> "1234.56".
func collapseDots(s string) string {
	if strings.Count(s, ".") <= 1 {
		return s
	}
	last := strings.LastIndex(s, ".")
	return strings.ReplaceAll(s[:last], ".", "") + s[last:]
}
