package risk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"riskwatch/internal/model"
)

// Node is a decision tree node. Leaves have Feature == -1.
// Samples with x[Feature] <= Threshold go Left, others go Right.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold,omitempty"`
	Value     float64 `json:"value"` // positive-class fraction of training samples reaching this node
	Samples   int     `json:"samples"`
	Left      *Node   `json:"left,omitempty"`
	Right     *Node   `json:"right,omitempty"`
}

// IsLeaf reports whether n has no children
func (n *Node) IsLeaf() bool {
	return n.Feature < 0 || n.Left == nil || n.Right == nil
}

func (n *Node) next(x []float64) *Node {
	if x[n.Feature] <= n.Threshold {
		return n.Left
	}
	return n.Right
}

// Tree is one member of the ensemble
type Tree struct {
	Root *Node `json:"root"`
}

// Forest is the trained binary tree-ensemble artifact. It is read-only once
// loaded and shared by the classifier and the explainer.
type Forest struct {
	FeatureNames []string  `json:"feature_names"`
	Trees        []*Tree   `json:"trees"`
	Seed         int64     `json:"seed"`
	TrainedAt    time.Time `json:"trained_at"`
}

// Probability returns the mean positive-class leaf value across all trees
func (f *Forest) Probability(x []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.Trees {
		n := t.Root
		for !n.IsLeaf() {
			n = n.next(x)
		}
		sum += n.Value
	}
	return clamp(sum/float64(len(f.Trees)), 0, 1)
}

// BaseValue is the mean root value, the expected output before any split
func (f *Forest) BaseValue() float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.Root.Value
	}
	return sum / float64(len(f.Trees))
}

// Validate checks the artifact against the canonical feature schema
func (f *Forest) Validate() error {
	if !slices.Equal(f.FeatureNames, model.FeatureNames) {
		return fmt.Errorf("%w: artifact has %v, expected %v", ErrSchemaMismatch, f.FeatureNames, model.FeatureNames)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("%w: no trees", ErrInvalidArtifact)
	}
	for i, t := range f.Trees {
		if t == nil || t.Root == nil {
			return fmt.Errorf("%w: tree %d has no root", ErrInvalidArtifact, i)
		}
		if err := validateNode(t.Root, len(f.FeatureNames)); err != nil {
			return fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
		}
	}
	return nil
}

func validateNode(n *Node, width int) error {
	if n.IsLeaf() {
		return nil
	}
	if n.Feature >= width {
		return fmt.Errorf("split on feature %d out of range", n.Feature)
	}
	if err := validateNode(n.Left, width); err != nil {
		return err
	}
	return validateNode(n.Right, width)
}

// LoadForest reads and validates a JSON artifact
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Save writes the artifact as JSON
func (f *Forest) Save(path string) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadModel loads the shared artifact at process start. A missing artifact is
// tolerated (heuristic mode, nil forest) unless required is set. Schema or
// decoding problems are always configuration errors.
func LoadModel(path string, required bool) (*Forest, error) {
	if path == "" {
		if required {
			return nil, fmt.Errorf("%w: no model path configured", ErrModelUnavailable)
		}
		return nil, nil
	}
	f, err := LoadForest(path)
	if errors.Is(err, fs.ErrNotExist) {
		if required {
			return nil, fmt.Errorf("%w: %s", ErrModelUnavailable, path)
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return f, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
