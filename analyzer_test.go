package mindrisk

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeHopelessText(t *testing.T) {
	analyzer := NewLexiconAnalyzer()
	result := analyzer.Analyze("I feel completely hopeless and don't want to go on")

	require.True(t, result.OK())
	assert.Equal(t, LevelHigh, result.Indicators.Depression.Level)
	assert.Equal(t, []string{"hopeless"}, result.Indicators.Depression.KeywordsFound)
	assert.Equal(t, RiskHigh, result.RiskLevel)
	assert.Equal(t, []Condition{Depression}, result.ConcernsDetected)
	assert.Equal(t, 10, result.WordCount)
	require.NotEmpty(t, result.Insights)
	assert.Equal(t, InsightUrgent, result.Insights[0].Type)
}

func TestTextRiskRules(t *testing.T) {
	tests := []struct {
		text     string
		risk     RiskLevel
		concerns []Condition
		desc     string
	}{
		{"I feel completely hopeless", RiskHigh, []Condition{Depression}, "high depression keyword"},
		{"I had a panic attack on the bus", RiskHigh, []Condition{Anxiety}, "high anxiety phrase"},
		{"I am burned out", RiskHigh, []Condition{Stress}, "high stress phrase"},
		{"I feel anxious and stressed about work", RiskModerate, []Condition{Anxiety, Stress}, "two moderate conditions"},
		{"I feel so depressed and sad", RiskModerate, []Condition{Depression}, "one moderate condition with negative sentiment"},
		{"I am depressed but I have great friends", RiskLow, []Condition{Depression}, "one moderate condition with positive sentiment"},
		{"I feel sad and busy", RiskModerate, []Condition{}, "two mild conditions with negative sentiment"},
		{"I feel tired and lonely", RiskLow, []Condition{}, "one mild condition"},
		{"We went for a walk by the lake", RiskLow, []Condition{}, "nothing detected"},
	}

	analyzer := NewLexiconAnalyzer()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := analyzer.Analyze(tt.text)
			assert.Equal(t, tt.risk, result.RiskLevel)
			assert.Equal(t, tt.concerns, result.ConcernsDetected)
		})
	}
}

func TestIndicatorMatching(t *testing.T) {
	analyzer := NewLexiconAnalyzer()

	t.Run("keywords from several tiers are merged", func(t *testing.T) {
		result := analyzer.Analyze("I feel anxious and stressed")
		assert.Equal(t, LevelModerate, result.Indicators.Anxiety.Level)
		assert.Equal(t, []string{"stressed", "anxious"}, result.Indicators.Anxiety.KeywordsFound)
	})

	t.Run("single words match whole words only", func(t *testing.T) {
		result := analyzer.Analyze("Following the lowland trail")
		assert.Equal(t, LevelNone, result.Indicators.Depression.Level)
		assert.Empty(t, result.Indicators.Depression.KeywordsFound)
	})

	t.Run("word boundaries include non-ASCII letters", func(t *testing.T) {
		result := analyzer.Analyze("Dinner at Sadé with Zoë")
		assert.Equal(t, LevelNone, result.Indicators.Depression.Level)
		assert.Empty(t, result.Indicators.Depression.KeywordsFound)

		result = analyzer.Analyze("café, then sad")
		assert.Equal(t, []string{"sad"}, result.Indicators.Depression.KeywordsFound)
	})

	t.Run("phrases match as substrings", func(t *testing.T) {
		result := analyzer.Analyze("Everything feels like  TOO   MUCH lately")
		assert.Equal(t, LevelModerate, result.Indicators.Stress.Level)
		assert.Contains(t, result.Indicators.Stress.KeywordsFound, "too much")
	})

	t.Run("positive keywords", func(t *testing.T) {
		result := analyzer.Analyze("I feel calm and hopeful")
		assert.Equal(t, []string{"hopeful", "calm"}, result.Indicators.Positive.KeywordsFound)
	})
}

func TestInsights(t *testing.T) {
	analyzer := NewLexiconAnalyzer()

	tests := []struct {
		text  string
		types []InsightType
		desc  string
	}{
		{"We went for a walk by the lake", []InsightType{InsightNeutral}, "neutral fallback"},
		{"I feel happy grateful and hopeful today", []InsightType{InsightPositive, InsightPositive}, "positive sentiment and keywords"},
		{"I am depressed but I have great friends", []InsightType{InsightPositive, InsightConcern}, "positive sentiment with moderate depression"},
		{"This is awful and I feel anxious", []InsightType{InsightConcern, InsightConcern}, "negative sentiment with anxiety"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			result := analyzer.Analyze(tt.text)
			var got []InsightType
			for _, insight := range result.Insights {
				got = append(got, insight.Type)
				assert.NotEmpty(t, insight.Message)
			}
			assert.Equal(t, tt.types, got)
		})
	}
}

func TestAnalyzeInvalidInput(t *testing.T) {
	analyzer := NewLexiconAnalyzer()

	result := analyzer.Analyze("")
	assert.False(t, result.OK())
	assert.Equal(t, ErrInvalidText.Error(), result.Error)

	blank := analyzer.Analyze("   \n\t ")
	require.True(t, blank.OK())
	assert.Equal(t, 0, blank.WordCount)
	assert.Equal(t, RiskLow, blank.RiskLevel)
	assert.Equal(t, []InsightType{InsightNeutral}, []InsightType{blank.Insights[0].Type})
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	analyzer := NewLexiconAnalyzer()
	properties := gopter.NewProperties(nil)

	vocab := []string{"not", "happy", "sad", "hopeless", "anxious", "too", "much",
		"calm", "great", "don't", "tired", "panic", "attack", "busy", "the", "day"}

	properties.Property("analyze returns the same result twice", prop.ForAll(
		func(picks []int) bool {
			text := "x"
			for _, i := range picks {
				text += " " + vocab[i]
			}
			first := analyzer.Analyze(text)
			second := analyzer.Analyze(text)
			return assert.ObjectsAreEqual(first, second)
		},
		gen.SliceOf(gen.IntRange(0, len(vocab)-1)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestAnalyzeSentences(t *testing.T) {
	analyzer := NewLexiconAnalyzer()
	result := analyzer.AnalyzeSentences("I had a great day at work. But tonight I feel hopeless.")

	require.True(t, result.Overall.OK())
	require.Len(t, result.Sentences, 2)
	assert.Equal(t, RiskLow, result.Sentences[0].Analysis.RiskLevel)
	assert.Equal(t, RiskHigh, result.Sentences[1].Analysis.RiskLevel)
	assert.Equal(t, RiskHigh, result.Peak)
	assert.Contains(t, result.Sentences[1].Sentence.Text, "hopeless")

	empty := analyzer.AnalyzeSentences("")
	assert.False(t, empty.Overall.OK())
	assert.Empty(t, empty.Sentences)
}

func TestLexiconFileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	err := os.WriteFile(path, []byte(`
conditions:
  stress:
    high:
      - deadline hell
positive_words:
  - chuffed
negations:
  - aint
`), 0o644)
	require.NoError(t, err)

	lexicon, err := LoadLexiconFile(path)
	require.NoError(t, err)
	analyzer := NewLexiconAnalyzer(WithLexicon(lexicon))

	result := analyzer.Analyze("this week is deadline hell")
	assert.Equal(t, LevelHigh, result.Indicators.Stress.Level)
	assert.Equal(t, RiskHigh, result.RiskLevel)

	assert.Equal(t, Positive, analyzer.Analyze("so chuffed").Sentiment.Interpretation)
	assert.Equal(t, Negative, analyzer.Analyze("aint chuffed").Sentiment.Interpretation)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("conditions:\n  grief:\n    mild: [loss]\n"), 0o644))
	_, err = LoadLexiconFile(bad)
	assert.Error(t, err)
}
