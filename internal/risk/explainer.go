package risk

import "riskwatch/internal/model"

// Explainer attributes a prediction to individual features
type Explainer interface {
	Explain(fv model.FeatureVector) map[string]float64
}

// PathExplainer decomposes a forest prediction along each tree's decision
// path: every split credits its feature with the change in node value it
// causes. Averaged over trees, the attributions plus Forest.BaseValue equal
// the forest probability.
type PathExplainer struct {
	forest *Forest
}

// NewExplainer returns an explainer over f. A nil forest yields the neutral
// all-zero attribution.
func NewExplainer(f *Forest) *PathExplainer {
	return &PathExplainer{forest: f}
}

func (e *PathExplainer) Explain(fv model.FeatureVector) map[string]float64 {
	if e.forest == nil || len(e.forest.Trees) == 0 {
		return neutralAttributions()
	}
	return toAttributionMap(e.contributions(fv.Values()))
}

// contributions returns per-feature contributions in FeatureNames order
func (e *PathExplainer) contributions(x []float64) []float64 {
	out := make([]float64, len(model.FeatureNames))
	for _, t := range e.forest.Trees {
		n := t.Root
		for !n.IsLeaf() {
			child := n.next(x)
			out[n.Feature] += child.Value - n.Value
			n = child
		}
	}
	scale := 1 / float64(len(e.forest.Trees))
	for i := range out {
		out[i] *= scale
	}
	return out
}

// toAttributionMap is the single adapter from positional contributions to
// the named attribution contract.
func toAttributionMap(values []float64) map[string]float64 {
	m := neutralAttributions()
	for i, name := range model.FeatureNames {
		if i < len(values) {
			m[name] = values[i]
		}
	}
	return m
}

func neutralAttributions() map[string]float64 {
	m := make(map[string]float64, len(model.FeatureNames))
	for _, name := range model.FeatureNames {
		m[name] = 0
	}
	return m
}
