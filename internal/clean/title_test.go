package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procwatch-dev/procwatch/internal/model"
	"github.com/procwatch-dev/procwatch/internal/registry"
)

func testIndex() *registry.Index {
	return registry.BuildIndex([]model.Contract{
		{Provider: "Victorian YMCA", Title: "Aquatic Centre Management", Number: "4500"},
		{Provider: "Cleanaway Waste Management", Title: "Kerbside Collection", Number: "3100"},
		{Provider: "Cleanaway Waste Management", Title: "Green Waste Processing", Number: "3101"},
	})
}

func TestResolveTitle_ExactMatchUnchanged(t *testing.T) {
	title, outcome := Title("Victorian YMCA", "Aquatic Centre Management", "4500", testIndex())
	assert.Equal(t, "Aquatic Centre Management", title)
	assert.Equal(t, model.OutcomeUnchanged, outcome)
}

func TestResolveTitle_SingleContractRecoversBlankTitle(t *testing.T) {
	title, outcome := Title("Victorian YMCA", "", "4500", testIndex())
	assert.Equal(t, "Aquatic Centre Management", title)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestResolveTitle_SingleContractIgnoresWrongNumber(t *testing.T) {
	// With one contract on file the provider identity decides; the number
	// does not have to agree.
	title, outcome := Title("Victorian YMCA", "Aquatic Center Mgmt", "9999", testIndex())
	assert.Equal(t, "Aquatic Centre Management", title)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestResolveTitle_RecoversFromNumber(t *testing.T) {
	title, outcome := Title("Cleanaway Waste Management", "Green Waste Procesing", "3101", testIndex())
	assert.Equal(t, "Green Waste Processing", title)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestResolveTitle_AmbiguousWithoutNumberUnresolved(t *testing.T) {
	title, outcome := Title("Cleanaway Waste Management", "Waste Stuff", "", testIndex())
	assert.Equal(t, "Waste Stuff", title)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestResolveTitle_UnknownNumberUnresolved(t *testing.T) {
	title, outcome := Title("Cleanaway Waste Management", "Waste Stuff", "7777", testIndex())
	assert.Equal(t, "Waste Stuff", title)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestResolveTitle_UnknownProviderUnresolved(t *testing.T) {
	title, outcome := Title("Nobody Knows Pty Ltd", "Some Contract", "1", testIndex())
	assert.Equal(t, "Some Contract", title)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestResolveTitle_BlankTitleUnknownProviderUnresolved(t *testing.T) {
	title, outcome := Title("Nobody Knows Pty Ltd", "", "1", testIndex())
	assert.Equal(t, "", title)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}
