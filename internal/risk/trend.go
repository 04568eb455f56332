package risk

import (
	"math"

	"riskwatch/internal/model"

	"gonum.org/v1/gonum/stat"
)

const (
	// TrendWindow is how many of the most recent assessments feed the trend
	TrendWindow = 30
	// TrendThreshold is the slope magnitude that counts as a direction
	TrendThreshold = 0.05
)

// ComputeTrend fits a least-squares line over index vs probability for the
// last TrendWindow values (oldest first) and classifies its slope. The slope
// is rounded to 1e-9 so series that rise by exactly the threshold per step
// are not lost to float noise; the threshold itself counts as a direction.
func ComputeTrend(history []float64) model.TrendDirection {
	if len(history) > TrendWindow {
		history = history[len(history)-TrendWindow:]
	}
	if len(history) < 2 {
		return model.TrendStable
	}

	xs := make([]float64, len(history))
	for i := range xs {
		xs[i] = float64(i)
	}
	_, slope := stat.LinearRegression(xs, history, nil, false)
	slope = math.Round(slope*1e9) / 1e9

	switch {
	case slope >= TrendThreshold:
		return model.TrendIncreasing
	case slope <= -TrendThreshold:
		return model.TrendDecreasing
	default:
		return model.TrendStable
	}
}
