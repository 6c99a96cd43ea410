package clean

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/procwatch-dev/procwatch/internal/model"
)

var knownProviders = []string{
	"ABC Pty. Ltd.",
	"Victorian YMCA",
	"Citywide Service Solutions Pty Ltd",
	"Cleanaway Waste Management",
}

func TestProvider_StrictPassMatch(t *testing.T) {
	cleaned, outcome := Provider("ABC Pty Ltd", knownProviders, 80, 60)
	assert.Equal(t, "ABC Pty. Ltd.", cleaned)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestProvider_ExactMatchUnchanged(t *testing.T) {
	cleaned, outcome := Provider("Victorian YMCA", knownProviders, 80, 60)
	assert.Equal(t, "Victorian YMCA", cleaned)
	assert.Equal(t, model.OutcomeUnchanged, outcome)
}

func TestProvider_CasingNoiseResolvedStrict(t *testing.T) {
	cleaned, outcome := Provider("victorian ymca", knownProviders, 80, 60)
	assert.Equal(t, "Victorian YMCA", cleaned)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestProvider_LenientPassSplitsCamelCase(t *testing.T) {
	cleaned, outcome := Provider("VictorianYMCA", knownProviders, 80, 60)
	assert.Equal(t, "Victorian YMCA", cleaned)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestProvider_LenientPassStripsCountrySuffix(t *testing.T) {
	cleaned, outcome := Provider("VictorianYMCA (AU)", knownProviders, 80, 60)
	assert.Equal(t, "Victorian YMCA", cleaned)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestProvider_TypoRecoveredInLenientPass(t *testing.T) {
	// Two of three tokens match: 66 clears the lenient 60 but not the
	// strict 80.
	cleaned, outcome := Provider("Cleanaway Wasde Management", knownProviders, 80, 60)
	assert.Equal(t, "Cleanaway Waste Management", cleaned)
	assert.Equal(t, model.OutcomeChanged, outcome)
}

func TestProvider_NoMatchUnresolved(t *testing.T) {
	cleaned, outcome := Provider("Completely Unrelated Enterprises", knownProviders, 80, 60)
	assert.Equal(t, "Completely Unrelated Enterprises", cleaned)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestProvider_EmptyInputUnresolved(t *testing.T) {
	cleaned, outcome := Provider("", knownProviders, 80, 60)
	assert.Equal(t, "", cleaned)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestProvider_EmptyRegistryUnresolved(t *testing.T) {
	cleaned, outcome := Provider("ABC Pty Ltd", nil, 80, 60)
	assert.Equal(t, "ABC Pty Ltd", cleaned)
	assert.Equal(t, model.OutcomeUnresolved, outcome)
}

func TestSplitCamelWords(t *testing.T) {
	assert.Equal(t, "Victorian YMCA", splitCamelWords("VictorianYMCA"))
	assert.Equal(t, "ABC", splitCamelWords("ABC"))
	assert.Equal(t, "already spaced", splitCamelWords("already spaced"))
}
