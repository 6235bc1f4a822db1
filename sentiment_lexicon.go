package mindrisk

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// KeywordTiers holds the keyword list of each severity tier for one
// condition.
type KeywordTiers struct {
	Mild     []string `yaml:"mild"`
	Moderate []string `yaml:"moderate"`
	High     []string `yaml:"high"`
}

// ExternalLexicon is the on-disk shape of a lexicon override file.
type ExternalLexicon struct {
	Conditions       map[Condition]KeywordTiers `yaml:"conditions"`
	PositiveKeywords []string                   `yaml:"positive_keywords"`
	PositiveWords    []string                   `yaml:"positive_words"`
	NegativeWords    []string                   `yaml:"negative_words"`
	Negations        []string                   `yaml:"negations"`
}

// keywordMatcher matches one keyword. Phrases match by substring and single
// words by whole-word boundary.
type keywordMatcher struct {
	keyword string
	word    *regexp.Regexp
}

func newKeywordMatcher(keyword string) keywordMatcher {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	m := keywordMatcher{keyword: keyword}
	if !strings.Contains(keyword, " ") {
		m.word = regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(keyword) + `(?:$|[^\p{L}\p{N}_])`)
	}
	return m
}

// matches reports whether the keyword occurs in already-normalized text.
func (m keywordMatcher) matches(text string) bool {
	if m.word == nil {
		return strings.Contains(text, m.keyword)
	}
	return m.word.MatchString(text)
}

// tier pairs an indicator level with its keywords.
type tier struct {
	level    IndicatorLevel
	keywords []keywordMatcher
}

// Lexicon holds the word lists used by the LexiconAnalyzer.
type Lexicon struct {
	mutex            sync.RWMutex
	tiers            map[Condition][]tier // Ordered mild, moderate, high
	positiveKeywords []keywordMatcher
	positiveWords    map[string]bool
	negativeWords    map[string]bool
	negations        map[string]bool
}

// DefaultLexicon returns the built-in English lexicon.
func DefaultLexicon() *Lexicon {
	lexicon := &Lexicon{
		tiers:         make(map[Condition][]tier),
		positiveWords: make(map[string]bool),
		negativeWords: make(map[string]bool),
		negations:     make(map[string]bool),
	}
	lexicon.loadConditionKeywords()
	lexicon.loadSentimentWords()
	lexicon.loadNegations()
	return lexicon
}

// LoadLexiconFile returns the default lexicon merged with the YAML file at
// path.
func LoadLexiconFile(path string) (*Lexicon, error) {
	lexicon := DefaultLexicon()
	if path == "" {
		return lexicon, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading lexicon file: %w", err)
	}

	var external ExternalLexicon
	if err := yaml.Unmarshal(data, &external); err != nil {
		return nil, fmt.Errorf("error parsing lexicon YAML: %w", err)
	}

	if err := lexicon.Merge(external); err != nil {
		return nil, err
	}
	return lexicon, nil
}

// Merge adds the entries of an external lexicon to sl.
func (sl *Lexicon) Merge(external ExternalLexicon) error {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	for condition, tiers := range external.Conditions {
		if _, known := sl.tiers[condition]; !known {
			return fmt.Errorf("unknown condition %q in lexicon", condition)
		}
		sl.addTierKeywords(condition, LevelMild, tiers.Mild)
		sl.addTierKeywords(condition, LevelModerate, tiers.Moderate)
		sl.addTierKeywords(condition, LevelHigh, tiers.High)
	}

	for _, keyword := range external.PositiveKeywords {
		sl.positiveKeywords = appendMatcher(sl.positiveKeywords, keyword)
	}
	for _, word := range external.PositiveWords {
		sl.positiveWords[strings.ToLower(word)] = true
	}
	for _, word := range external.NegativeWords {
		sl.negativeWords[strings.ToLower(word)] = true
	}
	for _, negation := range external.Negations {
		sl.negations[strings.ToLower(negation)] = true
	}
	return nil
}

// loadConditionKeywords loads the graded condition keyword tables
func (sl *Lexicon) loadConditionKeywords() {
	tables := map[Condition]KeywordTiers{
		Depression: {
			High: []string{"suicidal", "suicide", "kill myself", "end my life", "want to die",
				"better off dead", "no reason to live", "worthless", "hopeless"},
			Moderate: []string{"depressed", "depression", "sad all the time", "empty", "numb",
				"no energy", "tired all the time", "exhausted", "guilty",
				"hate myself", "failure", "useless", "burden"},
			Mild: []string{"sad", "down", "unhappy", "low", "unmotivated", "lonely",
				"isolated", "tired", "bored", "disappointed"},
		},
		Anxiety: {
			High: []string{"panic attack", "cannot breathe", "terrified", "paralyzed with fear",
				"heart racing", "going to die", "losing control", "going crazy"},
			Moderate: []string{"anxious", "anxiety", "worried constantly", "nervous", "scared",
				"fear", "restless", "on edge", "tense", "cannot relax",
				"overthinking", "catastrophizing"},
			Mild: []string{"worried", "nervous", "uneasy", "stressed", "overwhelmed",
				"uncertain", "apprehensive"},
		},
		Stress: {
			High: []string{"breaking down", "cannot cope", "falling apart", "at my limit",
				"burned out", "completely overwhelmed"},
			Moderate: []string{"stressed", "pressure", "too much", "cannot handle",
				"overworked", "exhausted", "drained"},
			Mild: []string{"busy", "hectic", "demanding", "challenging", "tight deadline"},
		},
	}

	for _, condition := range trackedConditions {
		sl.tiers[condition] = []tier{
			{level: LevelMild},
			{level: LevelModerate},
			{level: LevelHigh},
		}
		table := tables[condition]
		sl.addTierKeywords(condition, LevelMild, table.Mild)
		sl.addTierKeywords(condition, LevelModerate, table.Moderate)
		sl.addTierKeywords(condition, LevelHigh, table.High)
	}

	for _, keyword := range []string{
		"happy", "grateful", "thankful", "blessed", "excited", "hopeful",
		"optimistic", "content", "peaceful", "calm", "relaxed", "joyful",
		"motivated", "energetic", "confident", "proud", "loved", "supported",
		"better", "improving", "progress", "good", "great", "wonderful",
	} {
		sl.positiveKeywords = appendMatcher(sl.positiveKeywords, keyword)
	}
}

// loadSentimentWords loads the polarity word lists
func (sl *Lexicon) loadSentimentWords() {
	for _, word := range []string{
		"love", "like", "enjoy", "appreciate", "wonderful", "amazing", "excellent",
		"great", "good", "nice", "beautiful", "awesome", "fantastic", "perfect",
		"happy", "glad", "pleased", "delighted", "thrilled", "excited", "grateful",
	} {
		sl.positiveWords[word] = true
	}

	for _, word := range []string{
		"hate", "dislike", "terrible", "awful", "horrible", "bad", "worst",
		"sad", "angry", "frustrated", "annoyed", "disappointed", "upset",
		"hurt", "pain", "suffer", "struggle", "difficult", "hard", "problem",
	} {
		sl.negativeWords[word] = true
	}
}

// loadNegations loads the closed list of negation tokens
func (sl *Lexicon) loadNegations() {
	for _, word := range []string{
		"not", "no", "never", "neither", "nobody", "nothing",
		"nowhere", "hardly", "barely", "scarcely", "don't",
		"doesn't", "didn't", "won't", "wouldn't", "couldn't",
		"shouldn't", "can't", "cannot", "isn't", "aren't",
	} {
		sl.negations[word] = true
	}
}

// addTierKeywords appends keywords to the tier of level. Callers hold the
// write lock or own sl exclusively.
func (sl *Lexicon) addTierKeywords(condition Condition, level IndicatorLevel, keywords []string) {
	tiers := sl.tiers[condition]
	for i := range tiers {
		if tiers[i].level != level {
			continue
		}
		for _, keyword := range keywords {
			tiers[i].keywords = appendMatcher(tiers[i].keywords, keyword)
		}
	}
}

func appendMatcher(matchers []keywordMatcher, keyword string) []keywordMatcher {
	m := newKeywordMatcher(keyword)
	if m.keyword == "" {
		return matchers
	}
	for _, existing := range matchers {
		if existing.keyword == m.keyword {
			return matchers
		}
	}
	return append(matchers, m)
}

// IsNegation checks if a token is a negation word
func (sl *Lexicon) IsNegation(token string) bool {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return sl.negations[token]
}

// Polarity classifies a token as positive and/or negative.
func (sl *Lexicon) Polarity(token string) (positive, negative bool) {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	return sl.positiveWords[token], sl.negativeWords[token]
}

// AddCustomKeyword adds a domain-specific keyword to a condition tier.
func (sl *Lexicon) AddCustomKeyword(condition Condition, level IndicatorLevel, keyword string) error {
	if level <= LevelNone || level > LevelHigh {
		return fmt.Errorf("keyword %q needs a tier between mild and high, got %d", keyword, level)
	}

	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	if _, known := sl.tiers[condition]; !known {
		return fmt.Errorf("unknown condition %q", condition)
	}
	sl.addTierKeywords(condition, level, []string{keyword})
	return nil
}

// AddCustomNegation adds a custom negation word
func (sl *Lexicon) AddCustomNegation(word string) {
	sl.mutex.Lock()
	defer sl.mutex.Unlock()

	sl.negations[strings.ToLower(word)] = true
}

// KeywordCount returns the number of condition keywords in the lexicon.
func (sl *Lexicon) KeywordCount() int {
	sl.mutex.RLock()
	defer sl.mutex.RUnlock()

	count := 0
	for _, tiers := range sl.tiers {
		for _, t := range tiers {
			count += len(t.keywords)
		}
	}
	return count
}
