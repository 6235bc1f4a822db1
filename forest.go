package mindrisk

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ForestConfig holds random forest hyperparameters.
type ForestConfig struct {
	NEstimators int `yaml:"n_estimators"`
	MaxDepth    int `yaml:"max_depth"`
}

// DefaultForestConfig returns 100 trees of depth at most 10.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{NEstimators: 100, MaxDepth: 10}
}

// RandomForest averages the class distributions of bootstrapped gini trees,
// each split drawing from sqrt(features) candidates.
type RandomForest struct {
	Config ForestConfig
	Seed   int64
	Labels []string
	Trees  []*DecisionTree
}

// NewRandomForest creates an untrained forest.
func NewRandomForest(config ForestConfig, seed int64) *RandomForest {
	return &RandomForest{Config: config, Seed: seed}
}

// Type implements Classifier.
func (rf *RandomForest) Type() ModelType { return RandomForestModel }

// Classes implements Classifier.
func (rf *RandomForest) Classes() []string { return rf.Labels }

// Fit grows Config.NEstimators trees on bootstrap samples of x.
func (rf *RandomForest) Fit(ctx context.Context, x mat.Matrix, y []string) error {
	n, d := x.Dims()
	if n != len(y) || n == 0 {
		return fmt.Errorf("random forest: %d rows for %d labels", n, len(y))
	}
	classes, targets := encodeLabels(y)
	k := len(classes)
	rng := rand.New(rand.NewSource(rf.Seed))

	maxFeatures := int(math.Sqrt(float64(d)))
	if maxFeatures < 1 {
		maxFeatures = 1
	}
	grower := &treeGrower{
		cols:            columns(x),
		maxDepth:        rf.Config.MaxDepth,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
		maxFeatures:     maxFeatures,
		rng:             rng,
		criterion:       newGiniCriterion(targets, k),
		leaf: func(rows []int) []float64 {
			dist := make([]float64, k)
			for _, r := range rows {
				dist[targets[r]]++
			}
			floats.Scale(1/float64(len(rows)), dist)
			return dist
		},
	}

	trees := make([]*DecisionTree, 0, rf.Config.NEstimators)
	sample := make([]int, n)
	for t := 0; t < rf.Config.NEstimators; t++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range sample {
			sample[i] = rng.Intn(n)
		}
		trees = append(trees, grower.grow(sample))
	}

	rf.Labels = classes
	rf.Trees = trees
	return nil
}

// PredictProba implements Classifier.
func (rf *RandomForest) PredictProba(x mat.Vector) []float64 {
	if len(rf.Trees) == 0 {
		return nil
	}
	probs := make([]float64, len(rf.Labels))
	for _, tree := range rf.Trees {
		floats.Add(probs, tree.Apply(x))
	}
	floats.Scale(1/float64(len(rf.Trees)), probs)
	return probs
}
