package clean

import (
	"strings"

	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
)

// Number mirrors the title cascade in the other direction: it verifies a
// raw contract number against the cleaned provider's registry contracts and
// recovers a missing or mismatched number from the cleaned title. The
// registry is keyed by the cleaned provider name, consistent with Title.
func Number(cleanProvider, rawNumber, cleanTitle string, idx *registry.Index) (string, model.Outcome) {
	if strings.TrimSpace(rawNumber) == "" && !idx.HasProvider(cleanProvider) {
		return rawNumber, model.OutcomeUnresolved
	}

	contracts := idx.Contracts(cleanProvider)
	if len(contracts) == 0 {
		return rawNumber, model.OutcomeUnresolved
	}

	for _, c := range contracts {
		if c.Number == rawNumber {
			return rawNumber, model.OutcomeUnchanged
		}
	}

	if strings.TrimSpace(cleanTitle) == "" {
		return rawNumber, model.OutcomeUnresolved
	}

	if len(contracts) == 1 {
		return contracts[0].Number, model.OutcomeChanged
	}

	for _, c := range contracts {
		if c.Title == cleanTitle {
			return c.Number, model.OutcomeChanged
		}
	}

	return rawNumber, model.OutcomeUnresolved
}
