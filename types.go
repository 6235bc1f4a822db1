package mindrisk

import (
	"fmt"
	"math"
	"strings"
)

// RiskLevel is the ordered risk scale shared by every component.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskUnknown  RiskLevel = "unknown" // Reported by an untrained classifier
)

// Rank returns the position of r in the low < moderate < high order. Unknown
// levels rank with low.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	default:
		return 0
	}
}

// Valid reports whether r is one of low, moderate or high.
func (r RiskLevel) Valid() bool {
	return r == RiskLow || r == RiskModerate || r == RiskHigh
}

// MaxRisk returns the higher of two risk levels.
func MaxRisk(a, b RiskLevel) RiskLevel {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// ParseRiskLevel normalizes a label such as " High " into a RiskLevel.
func ParseRiskLevel(s string) (RiskLevel, error) {
	level := RiskLevel(strings.ToLower(strings.TrimSpace(s)))
	if !level.Valid() {
		return "", fmt.Errorf("invalid risk level %q: must be low, moderate or high", s)
	}
	return level, nil
}

// Severity names a questionnaire score band.
type Severity string

const (
	SeverityMinimal          Severity = "minimal"
	SeverityMild             Severity = "mild"
	SeverityModerate         Severity = "moderate"
	SeverityModeratelySevere Severity = "moderately_severe"
	SeveritySevere           Severity = "severe"
)

// Condition names a mental-health signal tracked across components.
type Condition string

const (
	Depression Condition = "depression"
	Anxiety    Condition = "anxiety"
	Stress     Condition = "stress"
)

// trackedConditions is the fixed evaluation order for text indicators.
var trackedConditions = []Condition{Depression, Anxiety, Stress}

// IndicatorLevel grades a keyword-based condition signal. The zero value is
// LevelNone and the constants are declared in priority order.
type IndicatorLevel int

const (
	LevelNone IndicatorLevel = iota
	LevelMild
	LevelModerate
	LevelHigh
)

var indicatorLevelNames = [...]string{"none", "mild", "moderate", "high"}

func (l IndicatorLevel) String() string {
	if l < LevelNone || l > LevelHigh {
		return "none"
	}
	return indicatorLevelNames[l]
}

// MarshalText encodes the level by name so JSON output reads "level": "high".
func (l IndicatorLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name.
func (l *IndicatorLevel) UnmarshalText(text []byte) error {
	for i, name := range indicatorLevelNames {
		if name == string(text) {
			*l = IndicatorLevel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown indicator level %q", text)
}

// AtLeastModerate reports whether l counts as a detected concern.
func (l IndicatorLevel) AtLeastModerate() bool {
	return l >= LevelModerate
}

// maxLevel is the reduction used when several tiers match.
func maxLevel(a, b IndicatorLevel) IndicatorLevel {
	if b > a {
		return b
	}
	return a
}

// Indicator is the graded detection for one condition.
type Indicator struct {
	Level         IndicatorLevel `json:"level"`
	KeywordsFound []string       `json:"keywords_found"`
}

// PositiveIndicator records untiered positive keyword matches.
type PositiveIndicator struct {
	KeywordsFound []string `json:"keywords_found"`
}

// Indicators groups the per-condition detections of one text.
type Indicators struct {
	Depression Indicator         `json:"depression"`
	Anxiety    Indicator         `json:"anxiety"`
	Stress     Indicator         `json:"stress"`
	Positive   PositiveIndicator `json:"positive"`
}

// For returns a pointer to the indicator of condition c.
func (in *Indicators) For(c Condition) *Indicator {
	switch c {
	case Depression:
		return &in.Depression
	case Anxiety:
		return &in.Anxiety
	case Stress:
		return &in.Stress
	}
	return nil
}

// SentimentInterpretation is the categorical reading of a polarity value.
type SentimentInterpretation string

const (
	Positive SentimentInterpretation = "positive"
	Neutral  SentimentInterpretation = "neutral"
	Negative SentimentInterpretation = "negative"
)

// SentimentScore represents the lexicon sentiment of a text.
type SentimentScore struct {
	Polarity       float64                 `json:"polarity"`     // -1.0 (negative) to 1.0 (positive)
	Subjectivity   float64                 `json:"subjectivity"` // 0.0 (objective) to 1.0 (subjective)
	PositiveWords  int                     `json:"positive_words"`
	NegativeWords  int                     `json:"negative_words"`
	Interpretation SentimentInterpretation `json:"interpretation"`
}

// InsightType categorizes an insight message.
type InsightType string

const (
	InsightPositive InsightType = "positive"
	InsightConcern  InsightType = "concern"
	InsightUrgent   InsightType = "urgent"
	InsightNeutral  InsightType = "neutral"
)

// An Insight is one human-readable observation about a text.
type Insight struct {
	Type    InsightType `json:"type"`
	Message string      `json:"message"`
}

// TextAnalysis is the result of LexiconAnalyzer.Analyze. Error is set, and
// every other field left empty, when the input was rejected.
type TextAnalysis struct {
	Error            string         `json:"error,omitempty"`
	Sentiment        SentimentScore `json:"sentiment"`
	Indicators       Indicators     `json:"indicators"`
	RiskLevel        RiskLevel      `json:"risk_level"`
	Insights         []Insight      `json:"insights"`
	WordCount        int            `json:"word_count"`
	ConcernsDetected []Condition    `json:"concerns_detected"`
}

// OK reports whether the analysis ran.
func (ta TextAnalysis) OK() bool {
	return ta.Error == ""
}

// Confidence grades how many sources backed an assessment.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Assessment is the fused, user-facing result.
type Assessment struct {
	OverallRisk        RiskLevel  `json:"overall_risk"`
	Confidence         Confidence `json:"confidence"`
	Concerns           []string   `json:"concerns"`
	PositiveIndicators []string   `json:"positive_indicators"`
	Summary            string     `json:"summary"`
}

// roundTo rounds v to the given number of decimal places.
func roundTo(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
