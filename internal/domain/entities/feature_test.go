package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureSpecsMatchCanonicalOrder(t *testing.T) {
	specs := FeatureSpecs()
	require.Len(t, specs, len(FeatureOrder))
	for i, spec := range specs {
		assert.Equal(t, FeatureOrder[i], spec.Name)
		assert.Less(t, spec.Min, spec.Max, spec.Name)
		assert.NotEmpty(t, spec.Description, spec.Name)
	}
}

func TestFeatureByName(t *testing.T) {
	spec, ok := FeatureByName("histogram_variance")
	require.True(t, ok)
	assert.Equal(t, 0.0, spec.Min)
	assert.Equal(t, 269.0, spec.Max)

	_, ok = FeatureByName("heart_rate")
	assert.False(t, ok)
}

func TestSampleObservationIsInRange(t *testing.T) {
	sample := SampleObservation()
	require.Len(t, sample, len(FeatureOrder))
	for _, spec := range FeatureSpecs() {
		value, ok := sample[spec.Name]
		require.True(t, ok, spec.Name)
		assert.GreaterOrEqual(t, value, spec.Min, spec.Name)
		assert.LessOrEqual(t, value, spec.Max, spec.Name)
	}
}

func TestExampleCasesAreInRange(t *testing.T) {
	cases := ExampleCases()
	require.Len(t, cases, 3)
	for label, observation := range cases {
		require.Len(t, observation, len(FeatureOrder), label)
		for _, spec := range FeatureSpecs() {
			value := observation[spec.Name]
			assert.GreaterOrEqual(t, value, spec.Min, "%s %s", label, spec.Name)
			assert.LessOrEqual(t, value, spec.Max, "%s %s", label, spec.Name)
		}
	}
}

func TestLabelsFollowModelClassOrder(t *testing.T) {
	assert.Equal(t, []Label{LabelNormal, LabelSuspect, LabelPathological}, Labels())
}

func TestLabelInterpretation(t *testing.T) {
	assert.Contains(t, LabelNormal.Interpretation(), "Healthy")
	assert.Contains(t, LabelSuspect.Interpretation(), "attention")
	assert.Contains(t, LabelPathological.Interpretation(), "URGENT")
	assert.Empty(t, Label("BOGUS").Interpretation())
}
