package clean

import (
	"strings"
	"time"

	"github.com/procwatch-dev/procwatch/internal/model"
)

// isoDate is the canonical output format for cleaned dates.
const isoDate = "2006-01-02"

// datePatterns is the fixed, ordered list of layouts attempted after
// separator normalization. The first layout that parses wins; there is no
// ambiguity resolution beyond this order.
var datePatterns = []string{
	"2006-01-02",      // ISO
	"02-01-2006",      // day-month-year
	"01-02-2006",      // month-day-year
	"02-Jan-2006",     // abbreviated month name
	"02-January-2006", // long month name
	"January-02-2006", // month name first
	"06-01-02",        // two-digit year
}

var dateSeparators = strings.NewReplacer(",", "", "/", "-", " ", "-")

// Date normalizes a messy date string to ISO YYYY-MM-DD. A blank input or
// one matching no pattern is unresolved with the original retained.
func Date(raw string) (string, model.Outcome) {
	original := strings.TrimSpace(raw)
	if original == "" {
		return raw, model.OutcomeUnresolved
	}

	normalized := dateSeparators.Replace(original)

	for _, layout := range datePatterns {
		t, err := time.Parse(layout, normalized)
		if err != nil {
			continue
		}
		cleaned := t.Format(isoDate)
		if cleaned != original {
			return cleaned, model.OutcomeChanged
		}
		return original, model.OutcomeUnchanged
	}

	return original, model.OutcomeUnresolved
}

// ParseDate attempts the same pattern cascade and reports whether the text
// parsed. Used where a date feeds a comparison rather than a cleaned field,
// such as contract expiry checks.
func ParseDate(raw string) (time.Time, bool) {
	normalized := dateSeparators.Replace(strings.TrimSpace(raw))
	if normalized == "" {
		return time.Time{}, false
	}
	for _, layout := range datePatterns {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
