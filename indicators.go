package mindrisk

// detectIndicators matches every condition tier and the positive keywords
// against normalized text. A condition's level is the maximum matched tier;
// its keywords are the deduplicated union in scan order.
func detectIndicators(lexicon *Lexicon, text string) Indicators {
	lexicon.mutex.RLock()
	defer lexicon.mutex.RUnlock()

	indicators := Indicators{
		Depression: Indicator{KeywordsFound: []string{}},
		Anxiety:    Indicator{KeywordsFound: []string{}},
		Stress:     Indicator{KeywordsFound: []string{}},
		Positive:   PositiveIndicator{KeywordsFound: []string{}},
	}

	for _, condition := range trackedConditions {
		indicator := indicators.For(condition)
		seen := make(map[string]bool)

		for _, t := range lexicon.tiers[condition] {
			for _, m := range t.keywords {
				if !m.matches(text) {
					continue
				}
				indicator.Level = maxLevel(indicator.Level, t.level)
				if !seen[m.keyword] {
					seen[m.keyword] = true
					indicator.KeywordsFound = append(indicator.KeywordsFound, m.keyword)
				}
			}
		}
	}

	for _, m := range lexicon.positiveKeywords {
		if m.matches(text) {
			indicators.Positive.KeywordsFound = append(indicators.Positive.KeywordsFound, m.keyword)
		}
	}

	return indicators
}

// textRiskLevel applies the fixed rule order; the first matching rule wins.
func textRiskLevel(indicators Indicators, sentiment SentimentScore) RiskLevel {
	var elevated, mild int
	for _, condition := range trackedConditions {
		level := indicators.For(condition).Level
		if level == LevelHigh {
			return RiskHigh
		}
		switch {
		case level.AtLeastModerate():
			elevated++
		case level == LevelMild:
			mild++
		}
	}

	if elevated >= 2 || (elevated == 1 && sentiment.Polarity < negativeThreshold) {
		return RiskModerate
	}
	if mild >= 2 && sentiment.Polarity < 0 {
		return RiskModerate
	}
	return RiskLow
}

// concernsDetected lists conditions at moderate or high.
func concernsDetected(indicators Indicators) []Condition {
	concerns := []Condition{}
	for _, condition := range trackedConditions {
		if indicators.For(condition).Level.AtLeastModerate() {
			concerns = append(concerns, condition)
		}
	}
	return concerns
}

const positiveInsightKeywords = 3

// generateInsights turns the analysis into ordered, categorized messages.
func generateInsights(indicators Indicators, sentiment SentimentScore) []Insight {
	var insights []Insight

	switch sentiment.Interpretation {
	case Positive:
		insights = append(insights, Insight{
			Type:    InsightPositive,
			Message: "Your text expresses generally positive emotions and outlook.",
		})
	case Negative:
		insights = append(insights, Insight{
			Type:    InsightConcern,
			Message: "Your text reflects some negative emotions. This is normal to experience sometimes.",
		})
	}

	switch indicators.Depression.Level {
	case LevelHigh:
		insights = append(insights, Insight{
			Type:    InsightUrgent,
			Message: "We detected some concerning expressions in your text. Please consider speaking with a mental health professional.",
		})
	case LevelModerate:
		insights = append(insights, Insight{
			Type:    InsightConcern,
			Message: "Your text suggests you may be experiencing some feelings of sadness or low mood.",
		})
	}

	if indicators.Anxiety.Level.AtLeastModerate() {
		insights = append(insights, Insight{
			Type:    InsightConcern,
			Message: "Your text indicates you may be experiencing anxiety or worry. Relaxation techniques may help.",
		})
	}

	if indicators.Stress.Level.AtLeastModerate() {
		insights = append(insights, Insight{
			Type:    InsightConcern,
			Message: "You seem to be experiencing stress. Consider taking breaks and practicing self-care.",
		})
	}

	if len(indicators.Positive.KeywordsFound) >= positiveInsightKeywords {
		insights = append(insights, Insight{
			Type:    InsightPositive,
			Message: "You are expressing several positive emotions and thoughts. Keep nurturing these feelings!",
		})
	}

	if len(insights) == 0 {
		insights = append(insights, Insight{
			Type:    InsightNeutral,
			Message: "Your text appears emotionally balanced. Continue monitoring how you feel.",
		})
	}
	return insights
}
