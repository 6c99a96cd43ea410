package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procwatch-dev/procwatch/internal/model"
)

func TestResolveNumber_ExactMatchUnchanged(t *testing.T) {
	number, outcome := Number("Cleanaway Waste Management", "3100", "Kerbside Collection", testIndex())
	assert.Equal(t, "3100", number)
	assert.Equal(t, model.OutcomeUnchanged, outcome)
}

func TestResolveNumber_RecoversFromTitle(t *testing.T) {
	// The registry is consulted under the cleaned provider name, so a
	// resolved title can repair a mangled number.
	number, outcome := Number("Cleanaway Waste Management", "31OO", "Kerbside Collection", testIndex())
	assert.Equal(t, "3100", number)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestResolveNumber_SingleContractRecoversBlankNumber(t *testing.T) {
	number, outcome := Number("Victorian YMCA", "", "Aquatic Centre Management", testIndex())
	assert.Equal(t, "4500", number)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestResolveNumber_SingleContractIgnoresWrongTitle(t *testing.T) {
	number, outcome := Number("Victorian YMCA", "9999", "Whatever Title", testIndex())
	assert.Equal(t, "4500", number)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestResolveNumber_AmbiguousWithoutTitleUnresolved(t *testing.T) {
	number, outcome := Number("Cleanaway Waste Management", "7777", "", testIndex())
	assert.Equal(t, "7777", number)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestResolveNumber_UnknownTitleUnresolved(t *testing.T) {
	number, outcome := Number("Cleanaway Waste Management", "7777", "Not A Contract", testIndex())
	assert.Equal(t, "7777", number)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestResolveNumber_UnknownProviderUnresolved(t *testing.T) {
	number, outcome := Number("Nobody Knows Pty Ltd", "1", "Some Contract", testIndex())
	assert.Equal(t, "1", number)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}
