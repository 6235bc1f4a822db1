package mindrisk

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Input gathers everything known about one person for Engine.Assess. Any
// field may be empty.
type Input struct {
	Questionnaire *QuestionnaireResponses `json:"questionnaire,omitempty" yaml:"questionnaire,omitempty"`
	Text          string                  `json:"text,omitempty" yaml:"text,omitempty"`
	FacialEmotion string                  `json:"facial_emotion,omitempty" yaml:"facial_emotion,omitempty"`
}

// Report is the outcome of Engine.Assess: each component's result and the
// fused assessment with matching recommendations.
type Report struct {
	Questionnaire   *QuestionnaireResult `json:"questionnaire,omitempty"`
	TextAnalysis    *TextAnalysis        `json:"text_analysis,omitempty"`
	Prediction      *Prediction          `json:"ml_prediction,omitempty"`
	FacialEmotion   string               `json:"facial_emotion,omitempty"`
	Assessment      Assessment           `json:"assessment"`
	Recommendations RecommendationSet    `json:"recommendations"`
}

// Engine wires the questionnaire scorer, lexicon analyzer, classifier and
// fusion together.
type Engine struct {
	scorer   *QuestionnaireScorer
	analyzer *LexiconAnalyzer
	models   *ModelService
	logger   logrus.FieldLogger
}

// NewEngine builds an engine from config. WithLexicon takes precedence over
// config.LexiconFile, which is merged over the built-in lexicon.
func NewEngine(config Config, opts ...Option) (*Engine, error) {
	var base []Option
	if config.LexiconFile != "" {
		loaded, err := LoadLexiconFile(config.LexiconFile)
		if err != nil {
			return nil, err
		}
		base = append(base, WithLexicon(loaded))
	}
	o := buildOptions(append(base, opts...))

	return &Engine{
		scorer:   NewQuestionnaireScorer(),
		analyzer: NewLexiconAnalyzer(WithLexicon(o.lexicon)),
		models:   NewModelService(config, WithLogger(o.logger)),
		logger:   o.logger,
	}, nil
}

// Scorer returns the questionnaire scorer.
func (e *Engine) Scorer() *QuestionnaireScorer { return e.scorer }

// Analyzer returns the lexicon analyzer.
func (e *Engine) Analyzer() *LexiconAnalyzer { return e.analyzer }

// Models returns the classifier service.
func (e *Engine) Models() *ModelService { return e.models }

// Assess runs every component that has input and fuses the results. The
// classifier is consulted for text only once a model is trained.
func (e *Engine) Assess(ctx context.Context, in Input) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	var (
		report     Report
		sources    Sources
		conditions []Condition
	)

	if in.Questionnaire != nil {
		q := e.scorer.PredictFromQuestionnaire(*in.Questionnaire)
		report.Questionnaire = &q
		sources.Questionnaire = &q
		conditions = append(conditions, q.ConditionsDetected...)
	}

	if in.Text != "" {
		ta := e.analyzer.Analyze(in.Text)
		report.TextAnalysis = &ta
		sources.TextAnalysis = &ta
		for _, c := range ta.ConcernsDetected {
			if !containsCondition(conditions, c) {
				conditions = append(conditions, c)
			}
		}
		if e.models.IsTrained() {
			p := e.models.Predict(in.Text)
			report.Prediction = &p
			sources.Prediction = &p
		}
	}

	if in.FacialEmotion != "" {
		report.FacialEmotion = in.FacialEmotion
		sources.FacialEmotion = in.FacialEmotion
	}

	report.Assessment = GenerateCombinedAssessment(sources)
	report.Recommendations = Recommendations(report.Assessment.OverallRisk, conditions)
	e.logger.WithFields(logrus.Fields{
		"overall_risk": report.Assessment.OverallRisk,
		"confidence":   report.Assessment.Confidence,
	}).Debug("Assessment complete")
	return report, nil
}
