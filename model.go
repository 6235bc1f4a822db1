package mindrisk

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrNotTrained is reported by Predict before any model is trained or
// loaded.
var ErrNotTrained = errors.New("model not trained")

// notTrainedMessage is the Error text of a prediction made without a model.
const notTrainedMessage = "Model not trained. Please train the model first."

// Prediction is the classifier's output for one text. When Fallback is set
// the prediction failed and RiskLevel is unknown.
type Prediction struct {
	RiskLevel     RiskLevel          `json:"risk_level"`
	Confidence    float64            `json:"confidence,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	ModelType     ModelType          `json:"model_type,omitempty"`
	Error         string             `json:"error,omitempty"`
	Fallback      bool               `json:"fallback,omitempty"`
}

// Err returns nil for a successful prediction, ErrNotTrained when no model
// was available, and the reported failure otherwise.
func (p Prediction) Err() error {
	switch {
	case !p.Fallback:
		return nil
	case p.Error == notTrainedMessage:
		return ErrNotTrained
	default:
		return errors.New(p.Error)
	}
}

// ModelInfo describes the loaded model.
type ModelInfo struct {
	IsTrained    bool      `json:"is_trained"`
	ModelType    ModelType `json:"model_type,omitempty"`
	Classes      []string  `json:"classes"`
	ModelPath    string    `json:"model_path,omitempty"`
	FeatureCount int       `json:"feature_count"`
	RunID        string    `json:"run_id,omitempty"`
}

// ModelService owns a trained vectorizer and classifier. Predictions may run
// concurrently; Train and RetrainWithNewData are serialized and swap in the
// new model only once it has been fully fitted.
type ModelService struct {
	config  Config
	store   *ArtifactStore
	trainer *Trainer
	logger  logrus.FieldLogger

	trainMu sync.Mutex // one writer at a time
	mu      sync.RWMutex
	model   *trainedModel // nil until trained or loaded
}

// NewModelService creates a service over config.ModelDir and loads any
// previously persisted model. A missing or unreadable model leaves the
// service untrained.
func NewModelService(config Config, opts ...Option) *ModelService {
	o := buildOptions(opts)
	ms := &ModelService{
		config:  config,
		store:   NewArtifactStore(config.ModelDir),
		trainer: NewTrainer(config, o.logger),
		logger:  o.logger,
	}
	if err := ms.Reload(); err != nil && !errors.Is(err, ErrArtifactMissing) {
		ms.logger.WithError(err).WithField("dir", config.ModelDir).Warn("Could not load saved model")
	}
	return ms
}

// Reload replaces the in-memory model with the persisted one. On failure the
// current model is kept.
func (ms *ModelService) Reload() error {
	model, err := ms.store.Load()
	if err != nil {
		return err
	}
	ms.mu.Lock()
	ms.model = model
	ms.mu.Unlock()
	ms.logger.WithFields(logrus.Fields{
		"dir":        ms.store.Dir,
		"model_type": model.classifier.Type(),
		"run_id":     model.runID,
	}).Info("Model loaded")
	return nil
}

// IsTrained reports whether a model is available for prediction.
func (ms *ModelService) IsTrained() bool {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.model != nil
}

func (ms *ModelService) current() *trainedModel {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.model
}

// Train fits a new model and, on success, persists it and makes it current.
// The returned result is never nil. A failed or cancelled run leaves the
// previous model in place. A persistence failure is logged and the new model
// is still used.
func (ms *ModelService) Train(ctx context.Context, req TrainRequest) (*TrainResult, error) {
	ms.trainMu.Lock()
	defer ms.trainMu.Unlock()

	if req.Texts == nil || req.Labels == nil {
		req.Texts, req.Labels = BuiltinCorpus()
	}

	model, result, err := ms.trainer.Train(ctx, req)
	if err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		_, result, err = ms.trainer.incomplete(result.ModelType, err)
		return result, err
	}

	if err := ms.store.Save(model); err != nil {
		ms.logger.WithError(err).WithField("dir", ms.store.Dir).Error("Could not save model")
	} else {
		result.Persisted = true
	}

	ms.mu.Lock()
	ms.model = model
	ms.mu.Unlock()
	return result, nil
}

// RetrainWithNewData trains on the existing samples followed by the new
// ones. Without existing samples the built-in corpus takes their place. The
// model type of the current model is kept.
func (ms *ModelService) RetrainWithNewData(ctx context.Context, newTexts, newLabels, existingTexts, existingLabels []string) (*TrainResult, error) {
	if len(existingTexts) == 0 || len(existingLabels) == 0 {
		existingTexts, existingLabels = BuiltinCorpus()
	}
	texts := append(append([]string{}, existingTexts...), newTexts...)
	labels := append(append([]string{}, existingLabels...), newLabels...)

	modelType := LogisticRegressionModel
	if m := ms.current(); m != nil {
		modelType = m.classifier.Type()
	}
	return ms.Train(ctx, TrainRequest{Texts: texts, Labels: labels, ModelType: modelType})
}

// Predict classifies text with the current model. Without a model it
// returns a fallback prediction.
func (ms *ModelService) Predict(text string) Prediction {
	model := ms.current()
	if model == nil {
		return Prediction{
			RiskLevel: RiskUnknown,
			Error:     notTrainedMessage,
			Fallback:  true,
		}
	}

	classes := model.classifier.Classes()
	probs := model.classifier.PredictProba(model.vectorizer.TransformOne(text))
	if len(probs) != len(classes) || len(probs) == 0 {
		return Prediction{RiskLevel: RiskUnknown, Error: "classifier returned no probabilities", Fallback: true}
	}

	best := 0
	distribution := make(map[string]float64, len(classes))
	for i, class := range classes {
		distribution[class] = roundTo(probs[i], 4)
		if probs[i] > probs[best] {
			best = i
		}
	}
	return Prediction{
		RiskLevel:     RiskLevel(classes[best]),
		Confidence:    roundTo(probs[best], 4),
		Probabilities: distribution,
		ModelType:     model.classifier.Type(),
	}
}

// PredictBatch calls Predict for each text, preserving order.
func (ms *ModelService) PredictBatch(texts []string) []Prediction {
	out := make([]Prediction, len(texts))
	for i, text := range texts {
		out[i] = ms.Predict(text)
	}
	return out
}

// Info describes the current model.
func (ms *ModelService) Info() ModelInfo {
	model := ms.current()
	if model == nil {
		return ModelInfo{Classes: defaultClasses()}
	}
	return ModelInfo{
		IsTrained:    true,
		ModelType:    model.classifier.Type(),
		Classes:      model.classifier.Classes(),
		ModelPath:    ms.store.Dir,
		FeatureCount: model.vectorizer.FeatureCount(),
		RunID:        model.runID,
	}
}

func defaultClasses() []string {
	return []string{string(RiskLow), string(RiskModerate), string(RiskHigh)}
}
