package mindrisk

import "math"

const (
	positiveThreshold = 0.3
	negativeThreshold = -0.3
)

// scoreSentiment performs a single pass over words. A negation token arms a
// flag that swaps the polarity of the next token only, then clears. Negation
// tokens themselves never consume the flag.
func scoreSentiment(lexicon *Lexicon, words []string) SentimentScore {
	var (
		positiveCount  int
		negativeCount  int
		negationActive bool
	)

	for _, word := range words {
		if lexicon.IsNegation(word) {
			negationActive = true
			continue
		}

		isPositive, isNegative := lexicon.Polarity(word)
		if negationActive {
			isPositive, isNegative = isNegative, isPositive
			negationActive = false
		}

		if isPositive {
			positiveCount++
		}
		if isNegative {
			negativeCount++
		}
	}

	total := positiveCount + negativeCount

	var polarity float64
	if total > 0 {
		polarity = float64(positiveCount-negativeCount) / float64(total)
	}

	var subjectivity float64
	if len(words) > 0 {
		subjectivity = math.Min(1.0, float64(total)/float64(len(words))*2)
	}

	return SentimentScore{
		Polarity:       roundTo(polarity, 3),
		Subjectivity:   roundTo(subjectivity, 3),
		PositiveWords:  positiveCount,
		NegativeWords:  negativeCount,
		Interpretation: interpretPolarity(polarity),
	}
}

// interpretPolarity maps polarity onto positive, neutral or negative.
func interpretPolarity(polarity float64) SentimentInterpretation {
	switch {
	case polarity >= positiveThreshold:
		return Positive
	case polarity <= negativeThreshold:
		return Negative
	default:
		return Neutral
	}
}
