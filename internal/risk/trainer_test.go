package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrainLearnsCohortRule(t *testing.T) {
	X, y := SyntheticCohort(600, 42)
	f, err := Train(X, y, TrainConfig{NumTrees: 20, MaxDepth: 8, MinSamplesLeaf: 2, Seed: 42})
	require.NoError(t, err)
	require.NoError(t, f.Validate())

	testX, testY := SyntheticCohort(200, 99)
	correct := 0
	for i, row := range testX {
		if (f.Probability(row) >= 0.5) == testY[i] {
			correct++
		}
	}
	assert.Greater(t, float64(correct)/float64(len(testX)), 0.8)
	assert.Greater(t, f.Probability(atRisk.Values()), f.Probability(thriving.Values()))
}

func TestTrainDeterministic(t *testing.T) {
	X, y := SyntheticCohort(200, 1)
	cfg := TrainConfig{NumTrees: 5, MaxDepth: 5, MinSamplesLeaf: 2, Seed: 3}

	a, err := Train(X, y, cfg)
	require.NoError(t, err)
	b, err := Train(X, y, cfg)
	require.NoError(t, err)

	for _, row := range X[:20] {
		assert.Equal(t, a.Probability(row), b.Probability(row))
	}
}

func TestTrainRejectsBadInput(t *testing.T) {
	_, err := Train(nil, nil, DefaultTrainConfig())
	assert.Error(t, err)

	_, err = Train([][]float64{{1, 2}}, []bool{true}, DefaultTrainConfig())
	assert.ErrorIs(t, err, ErrSchemaMismatch)
}
