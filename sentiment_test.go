package mindrisk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentimentPolarity(t *testing.T) {
	tests := []struct {
		text           string
		polarity       float64
		subjectivity   float64
		interpretation SentimentInterpretation
		desc           string
	}{
		{"i am happy", 1, 0.667, Positive, "single positive word"},
		{"this is terrible", -1, 0.667, Negative, "single negative word"},
		{"happy but sad", 0, 1, Neutral, "balanced words cap subjectivity"},
		{"the meeting is at noon", 0, 0, Neutral, "no lexicon words"},
		{"good good bad", 0.333, 1, Positive, "two to one positive"},
		{"", 0, 0, Neutral, "no words"},
	}

	lexicon := DefaultLexicon()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			score := scoreSentiment(lexicon, strings.Fields(tt.text))
			assert.InDelta(t, tt.polarity, score.Polarity, 1e-9)
			assert.InDelta(t, tt.subjectivity, score.Subjectivity, 1e-9)
			assert.Equal(t, tt.interpretation, score.Interpretation)
		})
	}
}

func TestNegationHandling(t *testing.T) {
	tests := []struct {
		text     string
		positive int
		negative int
		desc     string
	}{
		{"happy", 1, 0, "plain positive"},
		{"not happy", 0, 1, "negation flips the next word"},
		{"not terrible", 1, 0, "negated negative counts as positive"},
		{"i don't like it", 0, 1, "contracted negation"},
		{"not really happy", 1, 0, "flag is spent on the word right after"},
		{"not happy and happy", 1, 1, "flag clears after one word"},
		{"not not happy", 0, 1, "repeated negation keeps the flag armed"},
		{"happy not", 1, 0, "trailing negation has nothing to flip"},
	}

	lexicon := DefaultLexicon()
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			score := scoreSentiment(lexicon, strings.Fields(tt.text))
			assert.Equal(t, tt.positive, score.PositiveWords, "positive words")
			assert.Equal(t, tt.negative, score.NegativeWords, "negative words")
		})
	}
}

func TestInterpretationUsesThresholds(t *testing.T) {
	tests := []struct {
		polarity float64
		want     SentimentInterpretation
	}{
		{0.3, Positive},
		{0.29, Neutral},
		{-0.29, Neutral},
		{-0.3, Negative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, interpretPolarity(tt.polarity), "polarity %v", tt.polarity)
	}
}

func TestLexiconOperations(t *testing.T) {
	lexicon := DefaultLexicon()

	pos, neg := lexicon.Polarity("wonderful")
	assert.True(t, pos)
	assert.False(t, neg)

	assert.False(t, lexicon.IsNegation("aint"))
	lexicon.AddCustomNegation("Aint")
	assert.True(t, lexicon.IsNegation("aint"))

	score := scoreSentiment(lexicon, []string{"aint", "happy"})
	assert.Equal(t, Negative, score.Interpretation)

	before := lexicon.KeywordCount()
	assert.NoError(t, lexicon.AddCustomKeyword(Stress, LevelHigh, "deadline hell"))
	assert.Equal(t, before+1, lexicon.KeywordCount())
	assert.NoError(t, lexicon.AddCustomKeyword(Stress, LevelHigh, "deadline hell"))
	assert.Equal(t, before+1, lexicon.KeywordCount(), "duplicates are ignored")

	assert.Error(t, lexicon.AddCustomKeyword(Condition("grief"), LevelMild, "loss"))
	assert.Error(t, lexicon.AddCustomKeyword(Stress, LevelNone, "calendar"))
	assert.Error(t, lexicon.AddCustomKeyword(Stress, IndicatorLevel(7), "calendar"))
	assert.Equal(t, before+1, lexicon.KeywordCount())
}
