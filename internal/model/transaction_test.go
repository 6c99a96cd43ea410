package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionRecord_OutcomeDispatch(t *testing.T) {
	rec := TransactionRecord{
		ProviderOutcome: OutcomeChanged,
		AmountOutcome:   OutcomeUnresolved,
		DateOutcome:     OutcomeUnchanged,
		TitleOutcome:    OutcomeChanged,
		NumberOutcome:   OutcomeUnchanged,
	}

	assert.Equal(t, OutcomeChanged, rec.Outcome(FieldProvider))
	assert.Equal(t, OutcomeUnresolved, rec.Outcome(FieldAmount))
	assert.Equal(t, OutcomeUnchanged, rec.Outcome(FieldDate))
	assert.Equal(t, OutcomeChanged, rec.Outcome(FieldTitle))
	assert.Equal(t, OutcomeUnchanged, rec.Outcome(FieldNumber))
	assert.Equal(t, Outcome(""), rec.Outcome(FieldKind("bogus")))
}

func TestFields_PipelineOrder(t *testing.T) {
	assert.Equal(t, []FieldKind{
		FieldProvider, FieldAmount, FieldDate, FieldTitle, FieldNumber,
	}, Fields)
}

func TestKeys_Agree(t *testing.T) {
	c := Contract{Provider: "A Corp", Title: "First", Number: "1"}
	rec := TransactionRecord{CleanProvider: "A Corp", CleanTitle: "First", CleanNumber: "1"}
	assert.Equal(t, c.Key(), rec.Key())
}
