package mindrisk

import (
	"regexp"
	"strings"
)

// termPattern selects runs of two or more word characters.
var termPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// A Tokenizer turns a text into the ordered terms a vectorizer counts.
type Tokenizer interface {
	Tokenize(text string) []string
}

// ngramTokenizer lowercases, extracts word terms, optionally drops English
// stop words, then emits every n-gram between min and max length joined by a
// single space.
type ngramTokenizer struct {
	min       int
	max       int
	stopWords bool
}

// NewNGramTokenizer creates the tokenizer used by the TF-IDF vectorizer.
func NewNGramTokenizer(min, max int, stopWords bool) Tokenizer {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	return &ngramTokenizer{min: min, max: max, stopWords: stopWords}
}

// Tokenize splits text into n-gram terms.
func (t *ngramTokenizer) Tokenize(text string) []string {
	words := termPattern.FindAllString(strings.ToLower(text), -1)
	if t.stopWords {
		kept := words[:0]
		for _, w := range words {
			if !IsStopWord(w) {
				kept = append(kept, w)
			}
		}
		words = kept
	}

	var terms []string
	for n := t.min; n <= t.max; n++ {
		if n == 1 {
			terms = append(terms, words...)
			continue
		}
		for i := 0; i+n <= len(words); i++ {
			terms = append(terms, strings.Join(words[i:i+n], " "))
		}
	}
	return terms
}
