package mindrisk

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrEmptyVocabulary is returned when document-frequency pruning leaves no
// terms.
var ErrEmptyVocabulary = errors.New("after pruning, no terms remain")

// VectorizerConfig configures the TF-IDF vectorizer.
type VectorizerConfig struct {
	MaxFeatures int     `yaml:"max_features"` // Vocabulary cap, by corpus frequency
	NGramMin    int     `yaml:"ngram_min"`
	NGramMax    int     `yaml:"ngram_max"`
	MinDF       int     `yaml:"min_df"`     // Minimum document count
	MaxDF       float64 `yaml:"max_df"`     // Maximum document proportion
	StopWords   bool    `yaml:"stop_words"` // Drop English stop words
}

// DefaultVectorizerConfig returns unigrams and bigrams over at most 5000
// terms, English stop words removed, terms present in more than 95% of
// documents dropped.
func DefaultVectorizerConfig() VectorizerConfig {
	return VectorizerConfig{
		MaxFeatures: 5000,
		NGramMin:    1,
		NGramMax:    2,
		MinDF:       1,
		MaxDF:       0.95,
		StopWords:   true,
	}
}

// TfidfVectorizer maps texts to L2-normalized TF-IDF vectors over a fitted
// vocabulary. Fields are exported for gob persistence; treat a fitted
// vectorizer as read-only.
type TfidfVectorizer struct {
	Config     VectorizerConfig
	Vocabulary map[string]int
	IDF        []float64
}

// NewTfidfVectorizer creates an unfitted vectorizer.
func NewTfidfVectorizer(config VectorizerConfig) *TfidfVectorizer {
	return &TfidfVectorizer{Config: config}
}

// Fitted reports whether Fit has run.
func (v *TfidfVectorizer) Fitted() bool {
	return len(v.Vocabulary) > 0 && len(v.IDF) == len(v.Vocabulary)
}

// FeatureCount returns the vocabulary size.
func (v *TfidfVectorizer) FeatureCount() int {
	return len(v.Vocabulary)
}

// Features returns the vocabulary in column order.
func (v *TfidfVectorizer) Features() []string {
	features := make([]string, len(v.Vocabulary))
	for term, idx := range v.Vocabulary {
		features[idx] = term
	}
	return features
}

func (v *TfidfVectorizer) tokenizer() Tokenizer {
	return NewNGramTokenizer(v.Config.NGramMin, v.Config.NGramMax, v.Config.StopWords)
}

// Fit learns the vocabulary and inverse document frequencies of texts.
func (v *TfidfVectorizer) Fit(texts []string) error {
	tok := v.tokenizer()
	nDocs := len(texts)

	docFreq := make(map[string]int)
	termFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, term := range tok.Tokenize(text) {
			termFreq[term]++
			if !seen[term] {
				seen[term] = true
				docFreq[term]++
			}
		}
	}

	maxDocCount := v.Config.MaxDF * float64(nDocs)
	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df >= v.Config.MinDF && float64(df) <= maxDocCount {
			kept = append(kept, term)
		}
	}
	if len(kept) == 0 {
		return ErrEmptyVocabulary
	}

	if v.Config.MaxFeatures > 0 && len(kept) > v.Config.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if termFreq[kept[i]] != termFreq[kept[j]] {
				return termFreq[kept[i]] > termFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:v.Config.MaxFeatures]
	}
	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	for i, term := range kept {
		v.Vocabulary[term] = i
		// Smoothed idf, as if one extra document contained every term.
		v.IDF[i] = math.Log(float64(1+nDocs)/float64(1+docFreq[term])) + 1
	}
	return nil
}

// FitTransform fits the vectorizer and returns the document matrix of texts.
func (v *TfidfVectorizer) FitTransform(texts []string) (*mat.Dense, error) {
	if err := v.Fit(texts); err != nil {
		return nil, err
	}
	return v.Transform(texts), nil
}

// Transform returns one row per text. Terms outside the vocabulary are
// ignored; the vocabulary is never refitted.
func (v *TfidfVectorizer) Transform(texts []string) *mat.Dense {
	x := mat.NewDense(len(texts), len(v.IDF), nil)
	for i, text := range texts {
		x.SetRow(i, v.vectorize(text))
	}
	return x
}

// TransformOne vectorizes a single text.
func (v *TfidfVectorizer) TransformOne(text string) *mat.VecDense {
	return mat.NewVecDense(len(v.IDF), v.vectorize(text))
}

func (v *TfidfVectorizer) vectorize(text string) []float64 {
	row := make([]float64, len(v.IDF))
	for _, term := range v.tokenizer().Tokenize(text) {
		if idx, ok := v.Vocabulary[term]; ok {
			row[idx]++
		}
	}
	floats.Mul(row, v.IDF)
	if norm := floats.Norm(row, 2); norm > 0 {
		floats.Scale(1/norm, row)
	}
	return row
}
