package mindrisk

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ModelType names a classifier family.
type ModelType string

// Supported classifier families.
const (
	LogisticRegressionModel ModelType = "logistic_regression"
	RandomForestModel       ModelType = "random_forest"
	GradientBoostingModel   ModelType = "gradient_boosting"
)

// ModelTypes lists the supported families.
var ModelTypes = []ModelType{LogisticRegressionModel, RandomForestModel, GradientBoostingModel}

// Valid reports whether t is a supported family.
func (t ModelType) Valid() bool {
	for _, known := range ModelTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ErrUnknownModelType is returned for an unsupported model type.
var ErrUnknownModelType = errors.New("unknown model type")

// A Classifier is a probabilistic multi-class model over TF-IDF rows.
type Classifier interface {
	// Fit trains on the rows of x labeled by y. It stops early with
	// ctx.Err() when ctx is done.
	Fit(ctx context.Context, x mat.Matrix, y []string) error
	// PredictProba returns one probability per entry of Classes.
	PredictProba(x mat.Vector) []float64
	// Classes returns the learned labels in sorted order.
	Classes() []string
	Type() ModelType
}

func init() {
	gob.Register(&LogisticRegression{})
	gob.Register(&RandomForest{})
	gob.Register(&GradientBoosting{})
}

// NewClassifier creates an untrained classifier of the given family using
// the hyperparameters in config.
func NewClassifier(modelType ModelType, config Config) (Classifier, error) {
	switch modelType {
	case LogisticRegressionModel:
		return NewLogisticRegression(config.Logistic), nil
	case RandomForestModel:
		return NewRandomForest(config.Forest, config.Seed), nil
	case GradientBoostingModel:
		return NewGradientBoosting(config.Boosting, config.Seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, modelType)
}

// PredictLabel returns the most probable class for x. Ties go to the class
// that sorts first.
func PredictLabel(c Classifier, x mat.Vector) string {
	probs := c.PredictProba(x)
	if len(probs) == 0 {
		return ""
	}
	return c.Classes()[floats.MaxIdx(probs)]
}

// encodeLabels returns the sorted distinct labels and each label's index.
func encodeLabels(y []string) ([]string, []int) {
	seen := make(map[string]bool)
	var classes []string
	for _, label := range y {
		if !seen[label] {
			seen[label] = true
			classes = append(classes, label)
		}
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	targets := make([]int, len(y))
	for i, label := range y {
		targets[i] = index[label]
	}
	return classes, targets
}

// columns copies x into column-major slices for fast per-feature scans.
func columns(x mat.Matrix) [][]float64 {
	_, c := x.Dims()
	cols := make([][]float64, c)
	for j := range cols {
		cols[j] = mat.Col(nil, j, x)
	}
	return cols
}

// softmax converts scores to probabilities in place.
func softmax(scores []float64) {
	peak := floats.Max(scores)
	sum := 0.0
	for i, s := range scores {
		scores[i] = math.Exp(s - peak)
		sum += scores[i]
	}
	floats.Scale(1/sum, scores)
}
