package clean

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procwatch-dev/procwatch/internal/model"
)

func TestPipeline_CleanRecordHasNoIssues(t *testing.T) {
	p := NewPipeline(testIndex(), DefaultOptions())

	rec := p.Process(model.RawTransaction{
		InvoiceID:      "INV1",
		ContractTitle:  "Kerbside Collection",
		Provider:       "Cleanaway Waste Management",
		InvoiceAmount:  "1234.56",
		InvoiceDate:    "2025-01-01",
		ContractNumber: "3100",
	})

	assert.Empty(t, rec.FailedFields)
	assert.Empty(t, rec.ModifiedFields)
	assert.Equal(t, "Cleanaway Waste Management", rec.CleanProvider)
	assert.Equal(t, "3100", rec.CleanNumber)
}

func TestPipeline_MessyRecordFullyRecovered(t *testing.T) {
	p := NewPipeline(testIndex(), DefaultOptions())

	rec := p.Process(model.RawTransaction{
		InvoiceID:      "INV2",
		ContractTitle:  "",
		Provider:       "victorian ymca",
		InvoiceAmount:  "$1,234.56",
		InvoiceDate:    "01/01/2025",
		ContractNumber: "4500",
	})

	assert.Equal(t, "Victorian YMCA", rec.CleanProvider)
	assert.Equal(t, "Aquatic Centre Management", rec.CleanTitle)
	assert.Equal(t, "2025-01-01", rec.CleanDate)
	require.True(t, rec.CleanAmount.Valid)
	assert.Equal(t, "1234.56", rec.CleanAmount.Decimal.String())

	assert.Empty(t, rec.FailedFields)
	assert.ElementsMatch(t, []model.FieldKind{
		model.FieldProvider, model.FieldAmount, model.FieldDate, model.FieldTitle,
	}, rec.ModifiedFields)
}

func TestPipeline_TitleRecoveryFeedsNumberRecovery(t *testing.T) {
	// A mangled number is repaired via the title that the number itself
	// could not have resolved.
	p := NewPipeline(testIndex(), DefaultOptions())

	rec := p.Process(model.RawTransaction{
		InvoiceID:      "INV3",
		ContractTitle:  "Green Waste Processing",
		Provider:       "Cleanaway Waste Management",
		InvoiceAmount:  "100",
		InvoiceDate:    "2025-02-02",
		ContractNumber: "31O1",
	})

	assert.Equal(t, "Green Waste Processing", rec.CleanTitle)
	assert.Equal(t, "3101", rec.CleanNumber)
	assert.Equal(t, model.OutcomeChanged, rec.NumberOutcome)
}

func TestPipeline_UnrecoverableFieldsFail(t *testing.T) {
	p := NewPipeline(testIndex(), DefaultOptions())

	rec := p.Process(model.RawTransaction{
		InvoiceID:      "INV4",
		ContractTitle:  "Mystery Contract",
		Provider:       "Totally Unknown Enterprises",
		InvoiceAmount:  "n/a",
		InvoiceDate:    "soon",
		ContractNumber: "",
	})

	assert.ElementsMatch(t, []model.FieldKind{
		model.FieldProvider, model.FieldAmount, model.FieldDate,
		model.FieldTitle, model.FieldNumber,
	}, rec.FailedFields)
	assert.Empty(t, rec.ModifiedFields)
}

func TestRecordIssues_SetsAreDisjoint(t *testing.T) {
	rec := model.TransactionRecord{
		ProviderOutcome: model.OutcomeChanged,
		AmountOutcome:   model.OutcomeUnresolved,
		DateOutcome:     model.OutcomeUnchanged,
		TitleOutcome:    model.OutcomeChanged,
		NumberOutcome:   model.OutcomeUnresolved,
	}
	RecordIssues(&rec)

	assert.Equal(t, []model.FieldKind{model.FieldAmount, model.FieldNumber}, rec.FailedFields)
	assert.Equal(t, []model.FieldKind{model.FieldProvider, model.FieldTitle}, rec.ModifiedFields)
	for _, f := range rec.FailedFields {
		assert.NotContains(t, rec.ModifiedFields, f)
	}
}

func TestRecordIssues_ClearsPreviousSets(t *testing.T) {
	rec := model.TransactionRecord{
		ProviderOutcome: model.OutcomeUnchanged,
		AmountOutcome:   model.OutcomeUnchanged,
		DateOutcome:     model.OutcomeUnchanged,
		TitleOutcome:    model.OutcomeUnchanged,
		NumberOutcome:   model.OutcomeUnchanged,
		FailedFields:    []model.FieldKind{model.FieldDate},
		ModifiedFields:  []model.FieldKind{model.FieldTitle},
	}
	RecordIssues(&rec)

	assert.Empty(t, rec.FailedFields)
	assert.Empty(t, rec.ModifiedFields)
}

func TestProcessAll_PreservesOrder(t *testing.T) {
	p := NewPipeline(testIndex(), DefaultOptions())

	raws := []model.RawTransaction{
		{InvoiceID: "INV1", Provider: "Victorian YMCA", ContractTitle: "Aquatic Centre Management", InvoiceAmount: "10", InvoiceDate: "2025-01-01", ContractNumber: "4500"},
		{InvoiceID: "INV2", Provider: "Cleanaway Waste Management", ContractTitle: "Kerbside Collection", InvoiceAmount: "20", InvoiceDate: "2025-01-02", ContractNumber: "3100"},
		{InvoiceID: "INV3", Provider: "Cleanaway Waste Management", ContractTitle: "Green Waste Processing", InvoiceAmount: "30", InvoiceDate: "2025-01-03", ContractNumber: "3101"},
	}

	records, err := p.ProcessAll(context.Background(), raws, 4)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		assert.Equal(t, raws[i].InvoiceID, rec.Raw.InvoiceID)
	}
}

func TestProcessAll_CancelledContext(t *testing.T) {
	p := NewPipeline(testIndex(), DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ProcessAll(ctx, []model.RawTransaction{{InvoiceID: "INV1"}}, 2)
	assert.ErrorIs(t, err, context.Canceled)
}
