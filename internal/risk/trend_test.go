package risk

import (
	"testing"

	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComputeTrend(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    model.TrendDirection
	}{
		{"empty", nil, model.TrendStable},
		{"single", []float64{0.9}, model.TrendStable},
		{"rising", []float64{0.2, 0.25, 0.3, 0.35}, model.TrendIncreasing},
		{"falling", []float64{0.9, 0.7, 0.5, 0.3}, model.TrendDecreasing},
		{"constant", []float64{0.4, 0.4, 0.4, 0.4, 0.4}, model.TrendStable},
		{"gentle", []float64{0.40, 0.41, 0.42, 0.43}, model.TrendStable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeTrend(tt.history))
		})
	}
}

func TestComputeTrendUsesMostRecentWindow(t *testing.T) {
	// a long decline followed by a flat recent window
	history := make([]float64, 0, 50)
	for i := 0; i < 20; i++ {
		history = append(history, 1-float64(i)*0.05)
	}
	for i := 0; i < TrendWindow; i++ {
		history = append(history, 0.2)
	}
	assert.Equal(t, model.TrendStable, ComputeTrend(history))
}
