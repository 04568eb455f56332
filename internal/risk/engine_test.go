package risk

import (
	"context"
	"errors"
	"testing"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingNotifier struct {
	calls  int
	alerts []model.Alert
	err    error
	panics bool
}

func (n *countingNotifier) Notify(_ context.Context, a model.Alert) error {
	n.calls++
	n.alerts = append(n.alerts, a)
	if n.panics {
		panic("sink exploded")
	}
	return n.err
}

func TestEngineCriticalNotifiesOnce(t *testing.T) {
	tests := []struct {
		name     string
		notifier *countingNotifier
	}{
		{"success", &countingNotifier{}},
		{"error", &countingNotifier{err: errors.New("smtp down")}},
		{"panic", &countingNotifier{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngineFromForest(stumpForest(), DefaultHeuristicWeights(), tt.notifier)
			a := e.Assess(context.Background(), atRisk, Subject{ID: "s1", Name: "Ada"})

			require.NotNil(t, a)
			assert.Equal(t, model.TierCritical, a.Tier)
			assert.True(t, a.AlertTriggered)
			assert.Equal(t, "ALERT: Immediate intervention required for Ada. High dropout risk detected.", a.AlertMessage)
			assert.Equal(t, 1, tt.notifier.calls)
			assert.Equal(t, model.AlertIntervention, tt.notifier.alerts[0].Kind)
			assert.Equal(t, "s1", tt.notifier.alerts[0].StudentID)
			assert.Equal(t, model.SourceModel, a.Source)
		})
	}
}

func TestEngineNonCriticalDoesNotNotify(t *testing.T) {
	n := &countingNotifier{}
	e := NewEngineFromForest(stumpForest(), DefaultHeuristicWeights(), n)

	a := e.Assess(context.Background(), thriving, Subject{Name: "Grace"})
	assert.Equal(t, model.TierLow, a.Tier)
	assert.False(t, a.AlertTriggered)
	assert.Empty(t, a.AlertMessage)
	assert.Zero(t, n.calls)
	assert.Len(t, a.Attributions, len(model.FeatureNames))
}

func TestEngineNilNotifier(t *testing.T) {
	e := NewEngineFromForest(stumpForest(), DefaultHeuristicWeights(), nil)
	a := e.Assess(context.Background(), atRisk, Subject{Name: "Ada"})
	assert.True(t, a.AlertTriggered)
}

func TestEngineTierConsistentWithProbability(t *testing.T) {
	e := NewEngineFromForest(nil, DefaultHeuristicWeights(), nil)
	for _, fv := range []model.FeatureVector{atRisk, thriving, model.DefaultFeatures()} {
		a := e.Assess(context.Background(), fv, Subject{Name: "x"})
		assert.Equal(t, TierFor(a.Probability), a.Tier)
	}
}

func TestEngineHeuristicEndToEnd(t *testing.T) {
	n := &countingNotifier{}
	weights := HeuristicWeights{Attendance: 3, GPA: 1, FinancialStress: 3, FamilySupport: 1}
	e := NewEngineFromForest(nil, weights, n)
	assert.False(t, e.ModelBacked())

	a := e.Assess(context.Background(), atRisk, Subject{Name: "Ada"})
	assert.InDelta(t, 0.753125, a.Probability, 1e-9)
	assert.Contains(t, []model.RiskTier{model.TierHigh, model.TierCritical}, a.Tier)
	assert.Equal(t, model.SourceHeuristic, a.Source)
	for _, name := range model.FeatureNames {
		assert.Contains(t, a.Attributions, name)
	}
}
