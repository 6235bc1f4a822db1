package mindrisk

import (
	"fmt"
	"strings"
)

// Polarity beyond these bounds tags the text as clearly positive or negative
// language in a fused assessment.
const (
	positiveLanguagePolarity = 0.2
	negativeLanguagePolarity = -0.2
)

// Fused averages at or above these thresholds raise the overall risk.
const (
	highAverage     = 1.5
	moderateAverage = 0.8
)

// Facial emotion labels with a fixed contribution to fusion.
const (
	EmotionHappy   = "happy"
	EmotionSad     = "sad"
	EmotionFearful = "fearful"
	EmotionAngry   = "angry"
)

// emotionScores maps facial emotions to risk scores. Other labels contribute
// nothing.
var emotionScores = map[string]int{
	EmotionHappy:   0,
	EmotionSad:     1,
	EmotionFearful: 1,
	EmotionAngry:   1,
}

// Sources are the inputs to GenerateCombinedAssessment. Any subset may be
// set.
type Sources struct {
	Questionnaire *QuestionnaireResult `json:"questionnaire,omitempty"`
	TextAnalysis  *TextAnalysis        `json:"text_analysis,omitempty"`
	FacialEmotion string               `json:"facial_emotion,omitempty"`
	Prediction    *Prediction          `json:"prediction,omitempty"`
}

// riskScore maps a risk level to 0, 1 or 2.
func riskScore(r RiskLevel) int {
	return r.Rank()
}

// GenerateCombinedAssessment fuses the available sources into one
// assessment. Each source with a risk level adds a score; the overall risk
// follows the average, and confidence follows how many scores there were.
func GenerateCombinedAssessment(src Sources) Assessment {
	a := Assessment{
		OverallRisk:        RiskLow,
		Confidence:         ConfidenceMedium,
		Concerns:           []string{},
		PositiveIndicators: []string{},
	}
	var scores []int

	if q := src.Questionnaire; q != nil {
		scores = append(scores, riskScore(q.RiskLevel))
		for _, c := range q.ConditionsDetected {
			a.Concerns = append(a.Concerns, string(c))
		}
	}

	if ta := src.TextAnalysis; ta != nil && ta.OK() {
		scores = append(scores, riskScore(ta.RiskLevel))
		switch {
		case ta.Sentiment.Polarity > positiveLanguagePolarity:
			a.PositiveIndicators = append(a.PositiveIndicators, "positive_language")
		case ta.Sentiment.Polarity < negativeLanguagePolarity:
			a.Concerns = append(a.Concerns, "negative_language")
		}
	}

	emotion := strings.ToLower(strings.TrimSpace(src.FacialEmotion))
	if score, ok := emotionScores[emotion]; ok {
		scores = append(scores, score)
		if emotion == EmotionHappy {
			a.PositiveIndicators = append(a.PositiveIndicators, "positive_facial_expression")
		} else {
			a.Concerns = append(a.Concerns, emotion+"_facial_expression")
		}
	}

	if p := src.Prediction; p != nil && !p.Fallback && p.RiskLevel.Valid() {
		scores = append(scores, riskScore(p.RiskLevel))
	}

	if len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s
		}
		avg := float64(sum) / float64(len(scores))
		switch {
		case avg >= highAverage:
			a.OverallRisk = RiskHigh
		case avg >= moderateAverage:
			a.OverallRisk = RiskModerate
		default:
			a.OverallRisk = RiskLow
		}

		switch {
		case len(scores) >= 3:
			a.Confidence = ConfidenceHigh
		case len(scores) == 2:
			a.Confidence = ConfidenceMedium
		default:
			a.Confidence = ConfidenceLow
		}
	}

	a.Summary = summarize(a)
	return a
}

var summaryLeads = map[RiskLevel]string{
	RiskHigh: "Your assessment indicates elevated mental health concerns. " +
		"We strongly recommend consulting with a mental health professional.",
	RiskModerate: "Your assessment shows some areas of concern that may benefit from attention. " +
		"Consider speaking with a counselor or trying some of our recommended coping strategies.",
	RiskLow: "Your assessment indicates generally positive mental well-being. " +
		"Continue maintaining your current wellness practices.",
}

// summarize renders the canned lead for the overall risk followed by up to
// three concerns and two positives.
func summarize(a Assessment) string {
	parts := []string{summaryLeads[a.OverallRisk]}
	if len(a.Concerns) > 0 {
		parts = append(parts, fmt.Sprintf("Areas to focus on: %s.", joinTags(a.Concerns, 3)))
	}
	if len(a.PositiveIndicators) > 0 {
		parts = append(parts, fmt.Sprintf("Positive aspects noted: %s.", joinTags(a.PositiveIndicators, 2)))
	}
	return strings.Join(parts, " ")
}

func joinTags(tags []string, limit int) string {
	if len(tags) > limit {
		tags = tags[:limit]
	}
	formatted := make([]string, len(tags))
	for i, t := range tags {
		formatted[i] = strings.ReplaceAll(t, "_", " ")
	}
	return strings.Join(formatted, ", ")
}
