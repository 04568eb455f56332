package risk

import (
	"math/rand"

	"riskwatch/internal/model"
)

// SyntheticCohort draws n students uniformly over the feature ranges and
// labels them at-risk when the weighted deficit score exceeds 40.
func SyntheticCohort(n int, seed int64) ([][]float64, []bool) {
	rng := rand.New(rand.NewSource(seed))
	X := make([][]float64, n)
	y := make([]bool, n)
	for i := 0; i < n; i++ {
		fv := model.FeatureVector{
			AttendanceRate:       20 + rng.Float64()*80,
			GPA:                  rng.Float64() * 4,
			FinancialStressScore: rng.Float64(),
			FamilySupportScore:   rng.Float64(),
		}
		X[i] = fv.Values()
		y[i] = cohortLabel(fv)
	}
	return X, y
}

func cohortLabel(fv model.FeatureVector) bool {
	score := (100-fv.AttendanceRate)*0.4 +
		(4-fv.GPA)*10 +
		fv.FinancialStressScore*20 +
		(1-fv.FamilySupportScore)*20
	return score > 40
}
