package mindrisk

// Band binds a severity to a closed score interval.
type Band struct {
	Severity Severity
	Min      int
	Max      int
}

// Contains reports whether total falls inside the band.
func (b Band) Contains(total int) bool {
	return b.Min <= total && total <= b.Max
}

// An Instrument is a fixed-length Likert questionnaire.
type Instrument struct {
	Name      string
	Condition Condition
	Items     int
	Bands     []Band // Contiguous, non-overlapping, in ascending order
	DetectAt  Severity
}

const (
	minItemScore = 0
	maxItemScore = 3
)

var (
	// PHQ9 is the 9-item depression instrument (total 0-27).
	PHQ9 = Instrument{
		Name:      "phq9",
		Condition: Depression,
		Items:     9,
		Bands: []Band{
			{SeverityMinimal, 0, 4},
			{SeverityMild, 5, 9},
			{SeverityModerate, 10, 14},
			{SeverityModeratelySevere, 15, 19},
			{SeveritySevere, 20, 27},
		},
		DetectAt: SeverityModerate,
	}

	// GAD7 is the 7-item anxiety instrument (total 0-21).
	GAD7 = Instrument{
		Name:      "gad7",
		Condition: Anxiety,
		Items:     7,
		Bands: []Band{
			{SeverityMinimal, 0, 4},
			{SeverityMild, 5, 9},
			{SeverityModerate, 10, 14},
			{SeveritySevere, 15, 21},
		},
		DetectAt: SeverityModerate,
	}
)

// severityRisk maps a band onto the shared risk scale. Both instruments use
// the same table.
var severityRisk = map[Severity]RiskLevel{
	SeverityMinimal:          RiskLow,
	SeverityMild:             RiskLow,
	SeverityModerate:         RiskModerate,
	SeverityModeratelySevere: RiskHigh,
	SeveritySevere:           RiskHigh,
}

// severityRank orders severities for the detection threshold.
var severityRank = map[Severity]int{
	SeverityMinimal:          0,
	SeverityMild:             1,
	SeverityModerate:         2,
	SeverityModeratelySevere: 3,
	SeveritySevere:           4,
}

// Score sums responses and finds the band containing the total. ok is false,
// and nothing is scored, when the response count does not match the
// instrument or an item lies outside 0-3.
func (in Instrument) Score(responses []int) (total int, severity Severity, ok bool) {
	if len(responses) != in.Items {
		return 0, "", false
	}
	for _, r := range responses {
		if r < minItemScore || r > maxItemScore {
			return 0, "", false
		}
		total += r
	}
	for _, band := range in.Bands {
		if band.Contains(total) {
			return total, band.Severity, true
		}
	}
	return 0, "", false
}

// Risk maps a severity band of this instrument to a RiskLevel.
func (in Instrument) Risk(severity Severity) RiskLevel {
	if risk, ok := severityRisk[severity]; ok {
		return risk
	}
	return RiskLow
}

// Detected reports whether severity reaches the instrument's detection band.
func (in Instrument) Detected(severity Severity) bool {
	return severityRank[severity] >= severityRank[in.DetectAt]
}

// QuestionnaireResponses carries whichever instruments the person completed.
// A nil slice means the instrument is absent.
type QuestionnaireResponses struct {
	PHQ9 []int `json:"phq9,omitempty"`
	GAD7 []int `json:"gad7,omitempty"`
}

// QuestionnaireResult is the scored outcome of PredictFromQuestionnaire.
type QuestionnaireResult struct {
	Scores                  map[Condition]int      `json:"scores"`
	Severity                map[Condition]Severity `json:"severity"`
	RiskLevel               RiskLevel              `json:"risk_level"`
	ConditionsDetected      []Condition            `json:"conditions_detected"`
	RecommendationsPriority []string               `json:"recommendations_priority"`
}

// QuestionnaireScorer scores instruments and derives a questionnaire risk.
// It holds no state and is safe for concurrent use.
type QuestionnaireScorer struct{}

// NewQuestionnaireScorer creates a scorer.
func NewQuestionnaireScorer() *QuestionnaireScorer {
	return &QuestionnaireScorer{}
}

// Score scores one instrument.
func (qs *QuestionnaireScorer) Score(in Instrument, responses []int) (int, Severity, bool) {
	return in.Score(responses)
}

// PredictFromQuestionnaire scores each present instrument independently and
// takes the maximum mapped risk across them.
func (qs *QuestionnaireScorer) PredictFromQuestionnaire(responses QuestionnaireResponses) QuestionnaireResult {
	result := QuestionnaireResult{
		Scores:             make(map[Condition]int),
		Severity:           make(map[Condition]Severity),
		RiskLevel:          RiskLow,
		ConditionsDetected: []Condition{},
	}

	inputs := []struct {
		instrument Instrument
		responses  []int
	}{
		{PHQ9, responses.PHQ9},
		{GAD7, responses.GAD7},
	}

	for _, input := range inputs {
		if len(input.responses) == 0 {
			continue
		}
		total, severity, ok := input.instrument.Score(input.responses)
		if !ok {
			continue
		}

		condition := input.instrument.Condition
		result.Scores[condition] = total
		result.Severity[condition] = severity
		if input.instrument.Detected(severity) {
			result.ConditionsDetected = append(result.ConditionsDetected, condition)
		}
		result.RiskLevel = MaxRisk(result.RiskLevel, input.instrument.Risk(severity))
	}

	result.RecommendationsPriority = PriorityRecommendations(result.RiskLevel, result.ConditionsDetected)
	return result
}
