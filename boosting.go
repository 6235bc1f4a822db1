package mindrisk

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// BoostingConfig holds gradient boosting hyperparameters.
type BoostingConfig struct {
	NEstimators  int     `yaml:"n_estimators"`
	MaxDepth     int     `yaml:"max_depth"`
	LearningRate float64 `yaml:"learning_rate"`
}

// DefaultBoostingConfig returns 100 stages of depth-5 trees at rate 0.1.
func DefaultBoostingConfig() BoostingConfig {
	return BoostingConfig{NEstimators: 100, MaxDepth: 5, LearningRate: 0.1}
}

// GradientBoosting fits one regression tree per class per stage to the
// negative gradient of the multinomial deviance, with a single Newton step
// for each leaf value.
type GradientBoosting struct {
	Config BoostingConfig
	Seed   int64
	Labels []string
	Prior  []float64         // log class priors, the stage-0 scores
	Stages [][]*DecisionTree // [stage][class]
}

// NewGradientBoosting creates an untrained ensemble.
func NewGradientBoosting(config BoostingConfig, seed int64) *GradientBoosting {
	return &GradientBoosting{Config: config, Seed: seed}
}

// Type implements Classifier.
func (gb *GradientBoosting) Type() ModelType { return GradientBoostingModel }

// Classes implements Classifier.
func (gb *GradientBoosting) Classes() []string { return gb.Labels }

// Fit runs Config.NEstimators boosting stages over x.
func (gb *GradientBoosting) Fit(ctx context.Context, x mat.Matrix, y []string) error {
	n, d := x.Dims()
	if n != len(y) || n == 0 {
		return fmt.Errorf("gradient boosting: %d rows for %d labels", n, len(y))
	}
	classes, targets := encodeLabels(y)
	k := len(classes)
	rng := rand.New(rand.NewSource(gb.Seed))

	prior := make([]float64, k)
	for _, t := range targets {
		prior[t]++
	}
	for c := range prior {
		prior[c] = math.Log(prior[c] / float64(n))
	}

	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = append([]float64(nil), prior...)
	}

	rows := make([]int, n)
	vecs := make([]mat.Vector, n)
	for i := range rows {
		rows[i] = i
		vecs[i] = mat.NewVecDense(d, mat.Row(nil, i, x))
	}
	residual := make([]float64, n)
	prob := make([][]float64, n)
	crit := &mseCriterion{y: residual}
	grower := &treeGrower{
		cols:            columns(x),
		maxDepth:        gb.Config.MaxDepth,
		minSamplesSplit: 2,
		minSamplesLeaf:  1,
		rng:             rng,
		criterion:       crit,
	}

	kFactor := float64(k-1) / float64(k)
	stages := make([][]*DecisionTree, 0, gb.Config.NEstimators)
	for m := 0; m < gb.Config.NEstimators; m++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for i := range scores {
			prob[i] = append(prob[i][:0], scores[i]...)
			softmax(prob[i])
		}

		stage := make([]*DecisionTree, k)
		for c := 0; c < k; c++ {
			for i := range residual {
				residual[i] = -prob[i][c]
				if targets[i] == c {
					residual[i]++
				}
			}
			class := c
			grower.leaf = func(leafRows []int) []float64 {
				num, den := 0.0, 0.0
				for _, r := range leafRows {
					num += residual[r]
					p := prob[r][class]
					den += p * (1 - p)
				}
				if math.Abs(den) < 1e-150 {
					return []float64{0}
				}
				return []float64{num * kFactor / den}
			}
			tree := grower.grow(rows)
			stage[c] = tree

			for i := 0; i < n; i++ {
				scores[i][c] += gb.Config.LearningRate * tree.Apply(vecs[i])[0]
			}
		}
		stages = append(stages, stage)
	}

	gb.Labels = classes
	gb.Prior = prior
	gb.Stages = stages
	return nil
}

// PredictProba implements Classifier.
func (gb *GradientBoosting) PredictProba(x mat.Vector) []float64 {
	if len(gb.Prior) == 0 {
		return nil
	}
	scores := append([]float64(nil), gb.Prior...)
	for _, stage := range gb.Stages {
		for c, tree := range stage {
			scores[c] += gb.Config.LearningRate * tree.Apply(x)[0]
		}
	}
	softmax(scores)
	return scores
}
