package clean

import "github.com/procwatch-dev/procwatch/internal/model"

// RecordIssues derives the two issue-ledger sets from a record's outcome
// flags: unresolved fields need manual attention, changed fields were
// auto-corrected. The sets are disjoint by construction.
func RecordIssues(t *model.TransactionRecord) {
	t.FailedFields = nil
	t.ModifiedFields = nil
	for _, f := range model.Fields {
		switch t.Outcome(f) {
		case model.OutcomeUnresolved:
			t.FailedFields = append(t.FailedFields, f)
		case model.OutcomeChanged:
			t.ModifiedFields = append(t.ModifiedFields, f)
		}
	}
}
