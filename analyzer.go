package mindrisk

import (
	"errors"
	"strings"
)

// ErrInvalidText is reported when Analyze receives no text.
var ErrInvalidText = errors.New("invalid text input")

// LexiconAnalyzer detects sentiment and condition indicators in free text.
// Analyze holds no per-call state and is safe for concurrent use.
type LexiconAnalyzer struct {
	lexicon *Lexicon
}

// NewLexiconAnalyzer creates an analyzer over the default lexicon unless
// WithLexicon is given.
func NewLexiconAnalyzer(opts ...Option) *LexiconAnalyzer {
	o := buildOptions(opts)
	return &LexiconAnalyzer{lexicon: o.lexicon}
}

// Lexicon exposes the analyzer's word lists.
func (la *LexiconAnalyzer) Lexicon() *Lexicon {
	return la.lexicon
}

// Analyze scores text. Empty input yields a result whose Error is set.
func (la *LexiconAnalyzer) Analyze(text string) TextAnalysis {
	if text == "" {
		return TextAnalysis{Error: ErrInvalidText.Error()}
	}
	return la.analyzeDocument(NewDocument(text))
}

func (la *LexiconAnalyzer) analyzeDocument(doc *Document) TextAnalysis {
	words := doc.Words()
	sentiment := scoreSentiment(la.lexicon, words)
	indicators := detectIndicators(la.lexicon, doc.Text)

	return TextAnalysis{
		Sentiment:        sentiment,
		Indicators:       indicators,
		RiskLevel:        textRiskLevel(indicators, sentiment),
		Insights:         generateInsights(indicators, sentiment),
		WordCount:        len(words),
		ConcernsDetected: concernsDetected(indicators),
	}
}

// SentenceAnalysis is the analysis of one sentence of a longer narrative.
type SentenceAnalysis struct {
	Sentence Sentence     `json:"sentence"`
	Analysis TextAnalysis `json:"analysis"`
}

// NarrativeAnalysis breaks a narrative into sentences and analyzes each, so
// callers can point at the sentence that raised a concern.
type NarrativeAnalysis struct {
	Overall   TextAnalysis       `json:"overall"`
	Sentences []SentenceAnalysis `json:"sentences"`
	Peak      RiskLevel          `json:"peak_risk_level"`
}

// AnalyzeSentences analyzes the whole text and each sentence of it. Peak is
// the highest sentence-level risk.
func (la *LexiconAnalyzer) AnalyzeSentences(text string) NarrativeAnalysis {
	overall := la.Analyze(text)
	result := NarrativeAnalysis{
		Overall:   overall,
		Sentences: []SentenceAnalysis{},
		Peak:      RiskLow,
	}
	if !overall.OK() {
		return result
	}

	doc := NewDocument(text, WithSegmentation(true))
	for _, sent := range doc.Sentences() {
		if strings.TrimSpace(sent.Text) == "" {
			continue
		}
		analysis := la.analyzeDocument(NewDocument(sent.Text))
		result.Sentences = append(result.Sentences, SentenceAnalysis{
			Sentence: sent,
			Analysis: analysis,
		})
		result.Peak = MaxRisk(result.Peak, analysis.RiskLevel)
	}
	return result
}
