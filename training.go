package mindrisk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// minTrainingSamples is the smallest corpus Train accepts.
const minTrainingSamples = 10

// maxFolds caps the number of cross-validation folds.
const maxFolds = 5

// ValidationError reports training input that breaks the training contract.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid training data: " + e.Reason
}

func invalidf(format string, args ...interface{}) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err is or wraps a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// TrainRequest describes one training run. Nil Texts or Labels select the
// built-in corpus; a zero ModelType or TestSize selects the configured
// default.
type TrainRequest struct {
	Texts     []string
	Labels    []string
	ModelType ModelType
	TestSize  float64
}

// TrainResult reports a training run. On failure Success is false and Error
// holds the reason; the metric fields are then zero.
type TrainResult struct {
	Success              bool                  `json:"success"`
	Error                string                `json:"error,omitempty"`
	ModelType            ModelType             `json:"model_type,omitempty"`
	Accuracy             float64               `json:"accuracy"`
	F1Score              float64               `json:"f1_score"`
	CrossValMean         float64               `json:"cross_val_mean"`
	CrossValStd          float64               `json:"cross_val_std"`
	ClassificationReport *ClassificationReport `json:"classification_report,omitempty"`
	TrainingSamples      int                   `json:"training_samples"`
	TestSamples          int                   `json:"test_samples"`
	RunID                string                `json:"run_id,omitempty"`
	TrainingSeconds      float64               `json:"training_seconds"`
	Persisted            bool                  `json:"persisted"`
}

func failedResult(modelType ModelType, err error) *TrainResult {
	return &TrainResult{ModelType: modelType, Error: err.Error()}
}

// trainedModel is the unit swapped into a ModelService after training.
type trainedModel struct {
	vectorizer *TfidfVectorizer
	classifier Classifier
	runID      string
	trainedAt  time.Time
}

// Trainer fits, evaluates and cross-validates one model.
type Trainer struct {
	config Config
	logger logrus.FieldLogger
}

// NewTrainer creates a trainer using config's hyperparameters.
func NewTrainer(config Config, logger logrus.FieldLogger) *Trainer {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Trainer{config: config, logger: logger}
}

// Train validates req, fits the vectorizer on every text, fits the classifier
// on a stratified training split, scores the held-out split and
// cross-validates on the full matrix.
func (t *Trainer) Train(ctx context.Context, req TrainRequest) (*trainedModel, *TrainResult, error) {
	start := time.Now()
	modelType := req.ModelType
	if modelType == "" {
		modelType = t.config.ModelType
	}
	testSize := req.TestSize
	if testSize == 0 {
		testSize = t.config.TestSize
	}

	labels, err := t.validate(req.Texts, req.Labels, modelType, testSize)
	if err != nil {
		return nil, failedResult(modelType, err), err
	}

	log := t.logger.WithFields(logrus.Fields{"model_type": modelType, "samples": len(req.Texts)})
	log.Debug("Fitting vectorizer")

	vectorizer := NewTfidfVectorizer(t.config.Vectorizer)
	x, err := vectorizer.FitTransform(req.Texts)
	if err != nil {
		err = fmt.Errorf("vectorizing corpus: %w", err)
		return nil, failedResult(modelType, err), err
	}

	rng := rand.New(rand.NewSource(t.config.Seed))
	trainIdx, testIdx := stratifiedSplit(labels, testSize, rng)

	classifier, err := NewClassifier(modelType, t.config)
	if err != nil {
		return nil, failedResult(modelType, err), err
	}
	log.WithField("features", vectorizer.FeatureCount()).Debug("Fitting classifier")
	if err := classifier.Fit(ctx, selectRows(x, trainIdx), pick(labels, trainIdx)); err != nil {
		return t.incomplete(modelType, err)
	}

	truth := pick(labels, testIdx)
	pred := predictRows(classifier, x, testIdx)
	report := classificationReport(truth, pred)

	cvMean, cvStd, err := t.crossValidate(ctx, modelType, x, labels)
	if err != nil {
		return t.incomplete(modelType, err)
	}

	model := &trainedModel{
		vectorizer: vectorizer,
		classifier: classifier,
		runID:      uuid.NewString(),
		trainedAt:  time.Now(),
	}
	result := &TrainResult{
		Success:              true,
		ModelType:            modelType,
		Accuracy:             roundTo(report.Accuracy, 4),
		F1Score:              roundTo(report.WeightedAvg.F1Score, 4),
		CrossValMean:         roundTo(cvMean, 4),
		CrossValStd:          roundTo(cvStd, 4),
		ClassificationReport: &report,
		TrainingSamples:      len(trainIdx),
		TestSamples:          len(testIdx),
		RunID:                model.runID,
		TrainingSeconds:      time.Since(start).Seconds(),
	}
	log.WithFields(logrus.Fields{
		"accuracy": result.Accuracy,
		"f1":       result.F1Score,
		"cv_mean":  result.CrossValMean,
		"run_id":   result.RunID,
	}).Info("Model trained")
	return model, result, nil
}

// incomplete wraps a fit failure, reporting cancellation as an incomplete run.
func (t *Trainer) incomplete(modelType ModelType, err error) (*trainedModel, *TrainResult, error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = fmt.Errorf("training incomplete: %w", err)
		t.logger.WithField("model_type", modelType).Warn(err.Error())
	} else {
		err = fmt.Errorf("fitting %s: %w", modelType, err)
	}
	return nil, failedResult(modelType, err), err
}

// validate checks the corpus and returns the normalized labels.
func (t *Trainer) validate(texts, labels []string, modelType ModelType, testSize float64) ([]string, error) {
	if len(texts) != len(labels) {
		return nil, invalidf("number of texts (%d) must match number of labels (%d)", len(texts), len(labels))
	}
	if len(texts) < minTrainingSamples {
		return nil, invalidf("need at least %d samples for training, got %d", minTrainingSamples, len(texts))
	}
	if !modelType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModelType, modelType)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, invalidf("test size %.2f must be between 0 and 1", testSize)
	}

	normalized := make([]string, len(labels))
	counts := make(map[string]int)
	for i, label := range labels {
		level, err := ParseRiskLevel(label)
		if err != nil {
			return nil, invalidf("row %d: %v", i, err)
		}
		normalized[i] = string(level)
		counts[normalized[i]]++
	}
	if len(counts) < 2 {
		return nil, invalidf("need at least two distinct labels")
	}
	for label, n := range counts {
		if n < 2 {
			return nil, invalidf("label %q has a single sample; every label needs at least two", label)
		}
	}

	nTest := int(math.Ceil(testSize * float64(len(texts))))
	nTrain := len(texts) - nTest
	if nTest < len(counts) || nTrain < len(counts) {
		return nil, invalidf("test size %.2f gives %d test and %d training samples for %d labels",
			testSize, nTest, nTrain, len(counts))
	}
	return normalized, nil
}

// crossValidate scores a fresh classifier on each stratified fold of x and
// returns the mean and population standard deviation of fold accuracy.
func (t *Trainer) crossValidate(ctx context.Context, modelType ModelType, x *mat.Dense, labels []string) (float64, float64, error) {
	classes, _ := encodeLabels(labels)
	k := maxFolds
	if len(classes) < k {
		k = len(classes)
	}

	scores := make([]float64, 0, k)
	for fold, testIdx := range stratifiedFolds(labels, k) {
		trainIdx := complement(len(labels), testIdx)
		classifier, err := NewClassifier(modelType, t.config)
		if err != nil {
			return 0, 0, err
		}
		if err := classifier.Fit(ctx, selectRows(x, trainIdx), pick(labels, trainIdx)); err != nil {
			return 0, 0, err
		}
		score := accuracyScore(pick(labels, testIdx), predictRows(classifier, x, testIdx))
		t.logger.WithFields(logrus.Fields{"fold": fold, "accuracy": score}).Debug("Cross-validation fold")
		scores = append(scores, score)
	}
	mean, std := stat.PopMeanStdDev(scores, nil)
	return mean, std, nil
}

// stratifiedSplit holds out ceil(testSize*n) rows, allocating them across
// labels in proportion to label frequency. Both halves come back in row
// order.
func stratifiedSplit(labels []string, testSize float64, rng *rand.Rand) ([]int, []int) {
	n := len(labels)
	nTest := int(math.Ceil(testSize * float64(n)))
	byClass := groupByLabel(labels)
	classes := sortedKeys(byClass)

	type share struct {
		class string
		take  int
		frac  float64
	}
	shares := make([]share, len(classes))
	allocated := 0
	for i, c := range classes {
		exact := float64(len(byClass[c])) * float64(nTest) / float64(n)
		take := int(math.Floor(exact))
		shares[i] = share{class: c, take: take, frac: exact - float64(take)}
		allocated += take
	}
	order := make([]int, len(shares))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return shares[order[a]].frac > shares[order[b]].frac })
	for i := 0; allocated < nTest && i < len(order)*2; i++ {
		s := &shares[order[i%len(order)]]
		if s.take < len(byClass[s.class])-1 {
			s.take++
			allocated++
		}
	}

	var trainIdx, testIdx []int
	for _, s := range shares {
		rows := append([]int(nil), byClass[s.class]...)
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		testIdx = append(testIdx, rows[:s.take]...)
		trainIdx = append(trainIdx, rows[s.take:]...)
	}
	sort.Ints(trainIdx)
	sort.Ints(testIdx)
	return trainIdx, testIdx
}

// stratifiedFolds partitions rows into k test folds without shuffling: each
// label's rows, in order, are cut into k contiguous chunks, the first chunks
// taking the remainder.
func stratifiedFolds(labels []string, k int) [][]int {
	folds := make([][]int, k)
	byClass := groupByLabel(labels)
	for _, c := range sortedKeys(byClass) {
		rows := byClass[c]
		size, extra := len(rows)/k, len(rows)%k
		at := 0
		for f := 0; f < k; f++ {
			n := size
			if f < extra {
				n++
			}
			folds[f] = append(folds[f], rows[at:at+n]...)
			at += n
		}
	}
	for _, fold := range folds {
		sort.Ints(fold)
	}
	return folds
}

func groupByLabel(labels []string) map[string][]int {
	groups := make(map[string][]int)
	for i, l := range labels {
		groups[l] = append(groups[l], i)
	}
	return groups
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// complement returns the rows in [0,n) missing from sorted idx.
func complement(n int, idx []int) []int {
	out := make([]int, 0, n-len(idx))
	j := 0
	for i := 0; i < n; i++ {
		if j < len(idx) && idx[j] == i {
			j++
			continue
		}
		out = append(out, i)
	}
	return out
}

func selectRows(x *mat.Dense, idx []int) *mat.Dense {
	_, d := x.Dims()
	out := mat.NewDense(len(idx), d, nil)
	for i, r := range idx {
		out.SetRow(i, x.RawRowView(r))
	}
	return out
}

func pick(labels []string, idx []int) []string {
	out := make([]string, len(idx))
	for i, r := range idx {
		out[i] = labels[r]
	}
	return out
}

func predictRows(c Classifier, x *mat.Dense, idx []int) []string {
	out := make([]string, len(idx))
	for i, r := range idx {
		out[i] = PredictLabel(c, x.RowView(r))
	}
	return out
}
