package risk

import (
	"testing"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplainNeutralWithoutModel(t *testing.T) {
	attr := NewExplainer(nil).Explain(atRisk)
	require.Len(t, attr, len(model.FeatureNames))
	for _, name := range model.FeatureNames {
		v, ok := attr[name]
		assert.True(t, ok, name)
		assert.Zero(t, v, name)
	}
}

func TestExplainStump(t *testing.T) {
	e := NewExplainer(stumpForest())

	attr := e.Explain(atRisk)
	require.Len(t, attr, len(model.FeatureNames))
	assert.InDelta(t, 0.4, attr["attendance_rate"], 1e-12)
	assert.Zero(t, attr["gpa"])
	assert.Zero(t, attr["financial_stress_score"])
	assert.Zero(t, attr["family_support_score"])

	assert.InDelta(t, -0.4, e.Explain(thriving)["attendance_rate"], 1e-12)
}

func TestExplainAdditiveOnTrainedForest(t *testing.T) {
	X, y := SyntheticCohort(300, 7)
	f, err := Train(X, y, TrainConfig{NumTrees: 10, MaxDepth: 6, MinSamplesLeaf: 2, Seed: 7})
	require.NoError(t, err)

	e := NewExplainer(f)
	for _, fv := range []model.FeatureVector{atRisk, thriving, model.DefaultFeatures()} {
		attr := e.Explain(fv)
		require.Len(t, attr, len(model.FeatureNames))

		sum := f.BaseValue()
		for _, v := range attr {
			sum += v
		}
		assert.InDelta(t, f.Probability(fv.Values()), sum, 1e-9)
	}
}
