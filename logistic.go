package mindrisk

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// LogisticConfig holds logistic regression hyperparameters.
type LogisticConfig struct {
	C       float64 `yaml:"c"`        // Inverse L2 regularization strength
	MaxIter int     `yaml:"max_iter"` // LBFGS iteration cap
}

// DefaultLogisticConfig returns C=1 with 1000 iterations.
func DefaultLogisticConfig() LogisticConfig {
	return LogisticConfig{C: 1.0, MaxIter: 1000}
}

// LogisticRegression is a multinomial (softmax) logistic regression with an
// L2 penalty on the weights, fitted by LBFGS.
type LogisticRegression struct {
	Config     LogisticConfig
	Labels     []string
	Weights    *mat.Dense // classes x features
	Intercepts []float64
}

// NewLogisticRegression creates an untrained model.
func NewLogisticRegression(config LogisticConfig) *LogisticRegression {
	return &LogisticRegression{Config: config}
}

// Type implements Classifier.
func (lr *LogisticRegression) Type() ModelType { return LogisticRegressionModel }

// Classes implements Classifier.
func (lr *LogisticRegression) Classes() []string { return lr.Labels }

// Fit minimizes the penalized multinomial log loss.
func (lr *LogisticRegression) Fit(ctx context.Context, x mat.Matrix, y []string) error {
	n, d := x.Dims()
	if n != len(y) || n == 0 {
		return fmt.Errorf("logistic regression: %d rows for %d labels", n, len(y))
	}
	classes, targets := encodeLabels(y)
	k := len(classes)

	obj := &logLoss{x: x, targets: targets, k: k, d: d, c: lr.Config.C}
	problem := optimize.Problem{
		Func: func(theta []float64) float64 {
			return obj.eval(theta, nil)
		},
		Grad: func(grad, theta []float64) {
			obj.eval(theta, grad)
		},
		Status: func() (optimize.Status, error) {
			if err := ctx.Err(); err != nil {
				return optimize.Failure, err
			}
			return optimize.NotTerminated, nil
		},
	}
	settings := &optimize.Settings{
		MajorIterations:   lr.Config.MaxIter,
		GradientThreshold: 1e-6,
	}

	result, err := optimize.Minimize(problem, make([]float64, k*(d+1)), settings, &optimize.LBFGS{})
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	// Line search stalls near the optimum still leave a usable location.
	if result == nil || len(result.X) == 0 {
		return fmt.Errorf("logistic regression: %w", err)
	}

	lr.Labels = classes
	lr.Weights, lr.Intercepts = obj.unpack(result.X)
	return nil
}

// PredictProba implements Classifier.
func (lr *LogisticRegression) PredictProba(x mat.Vector) []float64 {
	if lr.Weights == nil {
		return nil
	}
	k, _ := lr.Weights.Dims()
	scores := make([]float64, k)
	for c := 0; c < k; c++ {
		scores[c] = mat.Dot(lr.Weights.RowView(c), x) + lr.Intercepts[c]
	}
	softmax(scores)
	return scores
}

// logLoss is the objective: summed cross-entropy plus ||W||^2 / 2C. The
// parameter vector stores each class's weights followed by its intercept.
type logLoss struct {
	x       mat.Matrix
	targets []int
	k, d    int
	c       float64
}

func (l *logLoss) unpack(theta []float64) (*mat.Dense, []float64) {
	w := mat.NewDense(l.k, l.d, nil)
	b := make([]float64, l.k)
	stride := l.d + 1
	for c := 0; c < l.k; c++ {
		w.SetRow(c, theta[c*stride:c*stride+l.d])
		b[c] = theta[c*stride+l.d]
	}
	return w, b
}

// eval returns the loss at theta and, when grad is non-nil, fills it.
func (l *logLoss) eval(theta, grad []float64) float64 {
	w, b := l.unpack(theta)
	n, _ := l.x.Dims()

	var z mat.Dense
	z.Mul(l.x, w.T())

	loss := 0.0
	resid := mat.NewDense(n, l.k, nil)
	row := make([]float64, l.k)
	for i := 0; i < n; i++ {
		mat.Row(row, i, &z)
		floats.Add(row, b)
		lse := floats.LogSumExp(row)
		loss += lse - row[l.targets[i]]
		for c := range row {
			row[c] = math.Exp(row[c] - lse)
		}
		row[l.targets[i]]--
		resid.SetRow(i, row)
	}

	penalty := 0.0
	for c := 0; c < l.k; c++ {
		wc := w.RawRowView(c)
		penalty += floats.Dot(wc, wc)
	}
	loss += penalty / (2 * l.c)

	if grad == nil {
		return loss
	}

	var gw mat.Dense
	gw.Mul(resid.T(), l.x)
	stride := l.d + 1
	for c := 0; c < l.k; c++ {
		g := grad[c*stride : c*stride+l.d]
		copy(g, gw.RawRowView(c))
		floats.AddScaled(g, 1/l.c, w.RawRowView(c))
		grad[c*stride+l.d] = floats.Sum(mat.Col(nil, c, resid))
	}
	return loss
}
