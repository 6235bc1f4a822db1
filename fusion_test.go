package mindrisk

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func questionnaireAt(risk RiskLevel, conditions ...Condition) *QuestionnaireResult {
	return &QuestionnaireResult{RiskLevel: risk, ConditionsDetected: conditions}
}

func textAt(risk RiskLevel, polarity float64) *TextAnalysis {
	return &TextAnalysis{RiskLevel: risk, Sentiment: SentimentScore{Polarity: polarity}}
}

func TestCombinedAssessmentRisk(t *testing.T) {
	tests := []struct {
		src  Sources
		risk RiskLevel
		desc string
	}{
		{Sources{Questionnaire: questionnaireAt(RiskHigh), FacialEmotion: "sad"}, RiskHigh, "average of exactly 1.5"},
		{Sources{Questionnaire: questionnaireAt(RiskHigh), FacialEmotion: "happy"}, RiskModerate, "average of 1.0"},
		{Sources{Questionnaire: questionnaireAt(RiskModerate), FacialEmotion: "happy"}, RiskLow, "average of 0.5"},
		{Sources{Questionnaire: questionnaireAt(RiskModerate), TextAnalysis: textAt(RiskModerate, 0), FacialEmotion: "happy"}, RiskLow, "average just under 0.8"},
		{Sources{TextAnalysis: textAt(RiskModerate, 0), FacialEmotion: "angry"}, RiskModerate, "text and emotion only"},
		{Sources{FacialEmotion: " Fearful "}, RiskModerate, "emotion labels are normalized"},
		{Sources{FacialEmotion: "surprised"}, RiskLow, "unknown emotion adds nothing"},
		{Sources{TextAnalysis: &TextAnalysis{Error: ErrInvalidText.Error(), RiskLevel: RiskHigh}}, RiskLow, "failed text analysis is ignored"},
		{Sources{Prediction: &Prediction{RiskLevel: RiskHigh}}, RiskHigh, "classifier prediction counts"},
		{Sources{Prediction: &Prediction{RiskLevel: RiskUnknown, Fallback: true}}, RiskLow, "fallback prediction is ignored"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.risk, GenerateCombinedAssessment(tt.src).OverallRisk)
		})
	}
}

func TestCombinedAssessmentWithoutSources(t *testing.T) {
	a := GenerateCombinedAssessment(Sources{})
	assert.Equal(t, RiskLow, a.OverallRisk)
	assert.Equal(t, ConfidenceMedium, a.Confidence)
	assert.Empty(t, a.Concerns)
	assert.Empty(t, a.PositiveIndicators)
	assert.Equal(t, "Your assessment indicates generally positive mental well-being. "+
		"Continue maintaining your current wellness practices.", a.Summary)
}

func TestCombinedAssessmentConfidence(t *testing.T) {
	properties := gopter.NewProperties(nil)

	all := []Sources{
		{Questionnaire: questionnaireAt(RiskModerate)},
		{TextAnalysis: textAt(RiskLow, 0)},
		{FacialEmotion: EmotionSad},
		{Prediction: &Prediction{RiskLevel: RiskHigh}},
	}

	properties.Property("confidence follows the number of scored sources", prop.ForAll(
		func(mask uint8) bool {
			var src Sources
			count := 0
			for i, s := range all {
				if mask&(1<<uint(i)) == 0 {
					continue
				}
				count++
				switch i {
				case 0:
					src.Questionnaire = s.Questionnaire
				case 1:
					src.TextAnalysis = s.TextAnalysis
				case 2:
					src.FacialEmotion = s.FacialEmotion
				case 3:
					src.Prediction = s.Prediction
				}
			}
			want := ConfidenceMedium
			switch {
			case count >= 3:
				want = ConfidenceHigh
			case count == 1:
				want = ConfidenceLow
			}
			return GenerateCombinedAssessment(src).Confidence == want
		},
		gen.UInt8Range(0, 15),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCombinedAssessmentTags(t *testing.T) {
	t.Run("concerns and summary", func(t *testing.T) {
		a := GenerateCombinedAssessment(Sources{
			Questionnaire: questionnaireAt(RiskHigh, Depression, Anxiety),
			FacialEmotion: "sad",
		})
		assert.Equal(t, RiskHigh, a.OverallRisk)
		assert.Equal(t, ConfidenceMedium, a.Confidence)
		assert.Equal(t, []string{"depression", "anxiety", "sad_facial_expression"}, a.Concerns)
		assert.Equal(t, "Your assessment indicates elevated mental health concerns. "+
			"We strongly recommend consulting with a mental health professional. "+
			"Areas to focus on: depression, anxiety, sad facial expression.", a.Summary)
	})

	t.Run("positive language and expression", func(t *testing.T) {
		a := GenerateCombinedAssessment(Sources{
			TextAnalysis:  textAt(RiskLow, 0.5),
			FacialEmotion: "happy",
		})
		assert.Equal(t, []string{"positive_language", "positive_facial_expression"}, a.PositiveIndicators)
		assert.Empty(t, a.Concerns)
		assert.Contains(t, a.Summary, "Positive aspects noted: positive language, positive facial expression.")
	})

	t.Run("negative language", func(t *testing.T) {
		a := GenerateCombinedAssessment(Sources{TextAnalysis: textAt(RiskModerate, -0.5)})
		assert.Equal(t, []string{"negative_language"}, a.Concerns)
		assert.Equal(t, ConfidenceLow, a.Confidence)
	})

	t.Run("polarity at the bounds is untagged", func(t *testing.T) {
		for _, polarity := range []float64{0.2, -0.2} {
			a := GenerateCombinedAssessment(Sources{TextAnalysis: textAt(RiskLow, polarity)})
			assert.Empty(t, a.Concerns)
			assert.Empty(t, a.PositiveIndicators)
		}
	})

	t.Run("summary lists at most three concerns", func(t *testing.T) {
		a := GenerateCombinedAssessment(Sources{
			Questionnaire: questionnaireAt(RiskHigh, Depression, Anxiety, Stress),
			TextAnalysis:  textAt(RiskHigh, -0.9),
			FacialEmotion: "angry",
		})
		assert.Len(t, a.Concerns, 5)
		assert.Contains(t, a.Summary, "Areas to focus on: depression, anxiety, stress.")
		assert.NotContains(t, a.Summary, "negative language")
	})
}
