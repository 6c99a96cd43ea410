// Package clean implements the per-field normalizers, the cross-field
// resolvers, and the issue ledger that together reconcile one transaction
// against the contract registry.
package clean

import (
	"strings"

	"github.com/procwatch-dev/procwatch/internal/match"
	"github.com/procwatch-dev/procwatch/internal/model"
)

// Provider reconciles a raw provider name against the list of known
// registry providers using a two-pass cascade: a strict token-set match
// first, then a lenient match after splitting run-together words and
// stripping country suffixes. An unresolved field keeps the raw value.
func Provider(raw string, known []string, strictThreshold, lenientThreshold int) (string, model.Outcome) {
	if raw == "" {
		return raw, model.OutcomeUnresolved
	}

	original := strings.TrimSpace(raw)

	best, score := match.ExtractBest(original, known)
	if score >= strictThreshold {
		if best != original {
			return best, model.OutcomeChanged
		}
		return original, model.OutcomeUnchanged
	}

	cleaned := splitCamelWords(original)
	cleaned = strings.ReplaceAll(cleaned, "(AU)", "")
	cleaned = strings.ReplaceAll(cleaned, "AUS", "")
	cleaned = strings.TrimSpace(cleaned)

	best, score = match.ExtractBest(cleaned, known)
	if score > lenientThreshold {
		if best != original {
			return best, model.OutcomeChanged
		}
		return original, model.OutcomeUnchanged
	}

	return original, model.OutcomeUnresolved
}

// splitCamelWords inserts a space before an internal uppercase letter that
// follows a lowercase letter: "VictorianYMCA" -> "Victorian YMCA".
func splitCamelWords(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	prevLower := false
	for _, r := range s {
		if prevLower && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		prevLower = r >= 'a' && r <= 'z'
		b.WriteRune(r)
	}
	return b.String()
}
