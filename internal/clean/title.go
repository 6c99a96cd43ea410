package clean

import (
	"strings"

	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
)

// Title verifies a raw contract title against the cleaned provider's
// registry contracts, recovering a missing or mismatched title from the
// contract number where possible. When the provider holds a single
// contract, its title is taken regardless of the supplied number; provider
// identity is privileged over number correctness.
func Title(cleanProvider, rawTitle, rawNumber string, idx *registry.Index) (string, model.Outcome) {
	if strings.TrimSpace(rawTitle) == "" && !idx.HasProvider(cleanProvider) {
		return rawTitle, model.OutcomeUnresolved
	}

	contracts := idx.Contracts(cleanProvider)
	if len(contracts) == 0 {
		return rawTitle, model.OutcomeUnresolved
	}

	for _, c := range contracts {
		if c.Title == rawTitle {
			return rawTitle, model.OutcomeUnchanged
		}
	}

	number := strings.TrimSpace(rawNumber)
	if number == "" {
		return rawTitle, model.OutcomeUnresolved
	}

	if len(contracts) == 1 {
		return contracts[0].Title, model.OutcomeChanged
	}

	for _, c := range contracts {
		if c.Number == number {
			return c.Title, model.OutcomeChanged
		}
	}

	return rawTitle, model.OutcomeUnresolved
}
