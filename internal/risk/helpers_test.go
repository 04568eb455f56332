package risk

import "riskwatch/internal/model"

// stumpForest splits once on attendance at 50: low attendance scores 0.9,
// high attendance scores 0.1.
func stumpForest() *Forest {
	return &Forest{
		FeatureNames: append([]string(nil), model.FeatureNames...),
		Trees: []*Tree{{Root: &Node{
			Feature:   0,
			Threshold: 50,
			Value:     0.5,
			Samples:   10,
			Left:      &Node{Feature: -1, Value: 0.9, Samples: 5},
			Right:     &Node{Feature: -1, Value: 0.1, Samples: 5},
		}}},
	}
}

var atRisk = model.FeatureVector{
	AttendanceRate:       40,
	GPA:                  1.5,
	FinancialStressScore: 0.9,
	FamilySupportScore:   0.1,
}

var thriving = model.FeatureVector{
	AttendanceRate:       97,
	GPA:                  3.8,
	FinancialStressScore: 0.1,
	FamilySupportScore:   0.9,
}
