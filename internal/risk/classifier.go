package risk

import "riskwatch/internal/model"

// Heuristic output bounds
const (
	HeuristicFloor   = 0.05
	HeuristicCeiling = 0.95
)

// Classifier scores a feature vector as a dropout probability
type Classifier interface {
	Probability(fv model.FeatureVector) float64
	// ModelBacked is false when the score comes from the deterministic heuristic
	ModelBacked() bool
}

// ForestClassifier scores with a trained forest
type ForestClassifier struct {
	forest *Forest
}

// NewForestClassifier wraps a loaded artifact
func NewForestClassifier(f *Forest) *ForestClassifier {
	return &ForestClassifier{forest: f}
}

func (c *ForestClassifier) Probability(fv model.FeatureVector) float64 {
	return c.forest.Probability(fv.Values())
}

func (c *ForestClassifier) ModelBacked() bool { return true }

// HeuristicWeights weight each normalized deficit in the fallback score
type HeuristicWeights struct {
	Attendance      float64 `json:"attendance"`
	GPA             float64 `json:"gpa"`
	FinancialStress float64 `json:"financialStress"`
	FamilySupport   float64 `json:"familySupport"`
}

// DefaultHeuristicWeights mirrors the relative weights of the labelling rule
// the forest is trained on.
func DefaultHeuristicWeights() HeuristicWeights {
	return HeuristicWeights{Attendance: 0.4, GPA: 0.4, FinancialStress: 0.2, FamilySupport: 0.2}
}

func (w HeuristicWeights) sum() float64 {
	return w.Attendance + w.GPA + w.FinancialStress + w.FamilySupport
}

// HeuristicClassifier is the no-model fallback: a weighted mean of
// normalized deficits clamped to [HeuristicFloor, HeuristicCeiling].
type HeuristicClassifier struct {
	weights HeuristicWeights
}

// NewHeuristicClassifier falls back to the default weights when w has a
// negative entry or sums to zero.
func NewHeuristicClassifier(w HeuristicWeights) *HeuristicClassifier {
	if w.Attendance < 0 || w.GPA < 0 || w.FinancialStress < 0 || w.FamilySupport < 0 || w.sum() <= 0 {
		w = DefaultHeuristicWeights()
	}
	return &HeuristicClassifier{weights: w}
}

func (c *HeuristicClassifier) Probability(fv model.FeatureVector) float64 {
	w := c.weights
	score := w.Attendance*clamp((100-fv.AttendanceRate)/100, 0, 1) +
		w.GPA*clamp((4-fv.GPA)/4, 0, 1) +
		w.FinancialStress*clamp(fv.FinancialStressScore, 0, 1) +
		w.FamilySupport*clamp(1-fv.FamilySupportScore, 0, 1)
	return clamp(score/w.sum(), HeuristicFloor, HeuristicCeiling)
}

func (c *HeuristicClassifier) ModelBacked() bool { return false }

// NewClassifier picks the forest when one is loaded, the heuristic otherwise
func NewClassifier(f *Forest, w HeuristicWeights) Classifier {
	if f != nil {
		return NewForestClassifier(f)
	}
	return NewHeuristicClassifier(w)
}
