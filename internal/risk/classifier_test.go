package risk

import (
	"testing"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestHeuristicClassifierClamped(t *testing.T) {
	c := NewHeuristicClassifier(DefaultHeuristicWeights())
	assert.False(t, c.ModelBacked())

	for _, att := range []float64{0, 25, 50, 100, 250} {
		for _, gpa := range []float64{0, 1, 2.5, 4, 9} {
			for _, s := range []float64{0, 0.5, 1} {
				for _, f := range []float64{0, 0.5, 1} {
					p := c.Probability(model.FeatureVector{
						AttendanceRate: att, GPA: gpa, FinancialStressScore: s, FamilySupportScore: f,
					})
					assert.GreaterOrEqual(t, p, HeuristicFloor)
					assert.LessOrEqual(t, p, HeuristicCeiling)
				}
			}
		}
	}
}

func TestHeuristicClassifierOrdering(t *testing.T) {
	c := NewHeuristicClassifier(DefaultHeuristicWeights())
	assert.Greater(t, c.Probability(atRisk), c.Probability(thriving))
	assert.Equal(t, HeuristicFloor, c.Probability(model.DefaultFeatures()))
}

func TestHeuristicClassifierInvalidWeights(t *testing.T) {
	zero := NewHeuristicClassifier(HeuristicWeights{})
	def := NewHeuristicClassifier(DefaultHeuristicWeights())
	assert.Equal(t, def.Probability(atRisk), zero.Probability(atRisk))

	negative := NewHeuristicClassifier(HeuristicWeights{Attendance: -1, GPA: 1})
	assert.Equal(t, def.Probability(atRisk), negative.Probability(atRisk))
}

func TestNewClassifier(t *testing.T) {
	assert.False(t, NewClassifier(nil, DefaultHeuristicWeights()).ModelBacked())

	c := NewClassifier(stumpForest(), DefaultHeuristicWeights())
	assert.True(t, c.ModelBacked())
	assert.InDelta(t, 0.9, c.Probability(atRisk), 1e-12)
	assert.InDelta(t, 0.1, c.Probability(thriving), 1e-12)
}
