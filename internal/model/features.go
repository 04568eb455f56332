package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// ErrInvalidFeatures is returned when a feature vector fails boundary validation
var ErrInvalidFeatures = errors.New("invalid feature vector")

// FeatureNames is the canonical feature order shared by the classifier, the
// explainer and the trained artifact.
var FeatureNames = []string{
	"attendance_rate",
	"gpa",
	"financial_stress_score",
	"family_support_score",
}

// FeatureVector is the fixed-schema input of the risk pipeline
type FeatureVector struct {
	AttendanceRate       float64 `json:"attendance_rate" bson:"attendanceRate"`             // percent, >= 0
	GPA                  float64 `json:"gpa" bson:"gpa"`                                     // >= 0
	FinancialStressScore float64 `json:"financial_stress_score" bson:"financialStressScore"` // 0-1
	FamilySupportScore   float64 `json:"family_support_score" bson:"familySupportScore"`     // 0-1
}

// DefaultFeatures returns the values a newly enrolled student starts with
func DefaultFeatures() FeatureVector {
	return FeatureVector{
		AttendanceRate:       100,
		GPA:                  4,
		FinancialStressScore: 0,
		FamilySupportScore:   1,
	}
}

// Values returns the features in FeatureNames order
func (f FeatureVector) Values() []float64 {
	return []float64{f.AttendanceRate, f.GPA, f.FinancialStressScore, f.FamilySupportScore}
}

// Validate checks every feature against its documented range
func (f FeatureVector) Validate() error {
	for i, v := range f.Values() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidFeatures, FeatureNames[i])
		}
	}
	if f.AttendanceRate < 0 {
		return fmt.Errorf("%w: attendance_rate must be >= 0", ErrInvalidFeatures)
	}
	if f.GPA < 0 {
		return fmt.Errorf("%w: gpa must be >= 0", ErrInvalidFeatures)
	}
	if f.FinancialStressScore < 0 || f.FinancialStressScore > 1 {
		return fmt.Errorf("%w: financial_stress_score must be within [0,1]", ErrInvalidFeatures)
	}
	if f.FamilySupportScore < 0 || f.FamilySupportScore > 1 {
		return fmt.Errorf("%w: family_support_score must be within [0,1]", ErrInvalidFeatures)
	}
	return nil
}

// FeatureVectorFromValues rebuilds a vector from FeatureNames-ordered values
func FeatureVectorFromValues(values []float64) (FeatureVector, error) {
	if len(values) != len(FeatureNames) {
		return FeatureVector{}, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidFeatures, len(FeatureNames), len(values))
	}
	return FeatureVector{
		AttendanceRate:       values[0],
		GPA:                  values[1],
		FinancialStressScore: values[2],
		FamilySupportScore:   values[3],
	}, nil
}

// UnmarshalJSON requires exactly the FeatureNames keys, each holding a number
func (f *FeatureVector) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFeatures, err)
	}
	fv, err := FeatureVectorFromFields(fields)
	if err != nil {
		return err
	}
	*f = fv
	return nil
}

// FeatureVectorFromFields builds a vector from decoded JSON object fields.
// Missing, null and unknown keys are rejected.
func FeatureVectorFromFields(fields map[string]json.RawMessage) (FeatureVector, error) {
	values := make([]float64, len(FeatureNames))
	var missing []string
	for i, name := range FeatureNames {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			missing = append(missing, name)
			continue
		}
		if err := json.Unmarshal(raw, &values[i]); err != nil {
			return FeatureVector{}, fmt.Errorf("%w: %s must be a number", ErrInvalidFeatures, name)
		}
	}
	if len(missing) > 0 {
		return FeatureVector{}, fmt.Errorf("%w: missing %s", ErrInvalidFeatures, strings.Join(missing, ", "))
	}

	if len(fields) != len(FeatureNames) {
		known := make(map[string]bool, len(FeatureNames))
		for _, name := range FeatureNames {
			known[name] = true
		}
		var unknown []string
		for key := range fields {
			if !known[key] {
				unknown = append(unknown, key)
			}
		}
		sort.Strings(unknown)
		return FeatureVector{}, fmt.Errorf("%w: unknown %s", ErrInvalidFeatures, strings.Join(unknown, ", "))
	}

	return FeatureVectorFromValues(values)
}
