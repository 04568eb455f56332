package risk

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"riskwatch/internal/model"
)

// TrainConfig controls forest fitting
type TrainConfig struct {
	NumTrees       int
	MaxDepth       int
	MinSamplesLeaf int
	Seed           int64
}

// DefaultTrainConfig matches the production artifact: 100 trees, seed 42
func DefaultTrainConfig() TrainConfig {
	return TrainConfig{NumTrees: 100, MaxDepth: 10, MinSamplesLeaf: 2, Seed: 42}
}

// Train fits a bootstrap-aggregated CART forest with Gini splits. Each tree
// draws from its own seeded source so the result is reproducible regardless
// of goroutine scheduling.
func Train(X [][]float64, y []bool, cfg TrainConfig) (*Forest, error) {
	if len(X) == 0 {
		return nil, fmt.Errorf("empty training data")
	}
	if len(X) != len(y) {
		return nil, fmt.Errorf("X and y must have same number of samples")
	}
	width := len(model.FeatureNames)
	for i, row := range X {
		if len(row) != width {
			return nil, fmt.Errorf("%w: sample %d has %d features", ErrSchemaMismatch, i, len(row))
		}
	}
	if cfg.NumTrees <= 0 {
		cfg.NumTrees = 100
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 10
	}
	if cfg.MinSamplesLeaf <= 0 {
		cfg.MinSamplesLeaf = 1
	}

	maxFeatures := int(math.Sqrt(float64(width)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	trees := make([]*Tree, cfg.NumTrees)
	var wg sync.WaitGroup
	for i := 0; i < cfg.NumTrees; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			b := &treeBuilder{
				X:           X,
				y:           y,
				rng:         rand.New(rand.NewSource(cfg.Seed + int64(idx))),
				maxDepth:    cfg.MaxDepth,
				minLeaf:     cfg.MinSamplesLeaf,
				maxFeatures: maxFeatures,
			}
			trees[idx] = &Tree{Root: b.build(b.bootstrap(), 0)}
		}(i)
	}
	wg.Wait()

	return &Forest{
		FeatureNames: append([]string(nil), model.FeatureNames...),
		Trees:        trees,
		Seed:         cfg.Seed,
		TrainedAt:    time.Now().UTC(),
	}, nil
}

type treeBuilder struct {
	X           [][]float64
	y           []bool
	rng         *rand.Rand
	maxDepth    int
	minLeaf     int
	maxFeatures int
}

func (b *treeBuilder) bootstrap() []int {
	idx := make([]int, len(b.X))
	for i := range idx {
		idx[i] = b.rng.Intn(len(b.X))
	}
	return idx
}

func (b *treeBuilder) build(idx []int, depth int) *Node {
	pos := 0
	for _, i := range idx {
		if b.y[i] {
			pos++
		}
	}
	node := &Node{Feature: -1, Value: float64(pos) / float64(len(idx)), Samples: len(idx)}

	if depth >= b.maxDepth || pos == 0 || pos == len(idx) || len(idx) < 2*b.minLeaf {
		return node
	}

	feature, threshold, ok := b.bestSplit(idx, pos)
	if !ok {
		return node
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	node.Feature = feature
	node.Threshold = threshold
	node.Left = b.build(left, depth+1)
	node.Right = b.build(right, depth+1)
	return node
}

// bestSplit scans midpoints between consecutive distinct values of a random
// subset of features and returns the split with the lowest weighted Gini.
func (b *treeBuilder) bestSplit(idx []int, totalPos int) (int, float64, bool) {
	n := len(idx)
	bestScore := gini(totalPos, n)
	bestFeature, bestThreshold, found := -1, 0.0, false

	sorted := make([]int, n)
	for _, f := range b.rng.Perm(len(b.X[0]))[:b.maxFeatures] {
		copy(sorted, idx)
		sort.Slice(sorted, func(a, c int) bool { return b.X[sorted[a]][f] < b.X[sorted[c]][f] })

		leftPos := 0
		for k := 0; k < n-1; k++ {
			if b.y[sorted[k]] {
				leftPos++
			}
			leftN := k + 1
			cur, next := b.X[sorted[k]][f], b.X[sorted[k+1]][f]
			if cur == next || leftN < b.minLeaf || n-leftN < b.minLeaf {
				continue
			}
			rightN := n - leftN
			score := (float64(leftN)*gini(leftPos, leftN) + float64(rightN)*gini(totalPos-leftPos, rightN)) / float64(n)
			if score < bestScore {
				bestScore = score
				bestFeature = f
				bestThreshold = (cur + next) / 2
				found = true
			}
		}
	}
	return bestFeature, bestThreshold, found
}

func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}
