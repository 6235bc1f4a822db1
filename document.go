package mindrisk

import (
	"strings"
	"sync"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// A DocOpt represents a setting that changes the document creation process.
//
// For example, it might enable sentence segmentation:
//
//	doc := mindrisk.NewDocument("...", mindrisk.WithSegmentation(true))
type DocOpt func(opts *DocOpts)

// DocOpts controls the Document creation process:
type DocOpts struct {
	Segment bool // If true, split the raw text into sentences
}

// WithSegmentation can enable or disable (the default) sentence segmentation.
func WithSegmentation(include bool) DocOpt {
	return func(opts *DocOpts) {
		opts.Segment = include
	}
}

// A Sentence represents a segmented portion of text.
type Sentence struct {
	Text  string `json:"text"`  // The sentence's text.
	Start int    `json:"start"` // Start position in original text
	End   int    `json:"end"`   // End position in original text
}

// String returns the text content of the sentence
func (s Sentence) String() string {
	return s.Text
}

// A Document represents a narrative prepared for lexicon analysis.
type Document struct {
	Raw  string // The text as supplied
	Text string // Lowercased with whitespace collapsed

	words     []string
	sentences []Sentence
}

// NewDocument normalizes text according to the user-specified options.
func NewDocument(text string, opts ...DocOpt) *Document {
	var base DocOpts
	for _, applyOpt := range opts {
		applyOpt(&base)
	}

	words := strings.Fields(strings.ToLower(text))
	doc := &Document{
		Raw:   text,
		Text:  strings.Join(words, " "),
		words: words,
	}

	if base.Segment {
		doc.sentences = segment(text)
	}
	return doc
}

// Words returns the whitespace tokens of the normalized text.
func (doc *Document) Words() []string {
	return doc.words
}

// Sentences returns `doc`'s sentences. It is empty unless the document was
// created with segmentation enabled.
func (doc *Document) Sentences() []Sentence {
	return doc.sentences
}

var (
	segmenterOnce sync.Once
	segmenter     *sentences.DefaultSentenceTokenizer
	segmenterErr  error
)

// segment splits raw text into sentences with the punkt tokenizer. If the
// tokenizer cannot be built the whole text is returned as one sentence.
func segment(text string) []Sentence {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	segmenterOnce.Do(func() {
		segmenter, segmenterErr = english.NewSentenceTokenizer(nil)
	})
	if segmenterErr != nil {
		return []Sentence{{Text: strings.TrimSpace(text), Start: 0, End: len(text)}}
	}

	var out []Sentence
	for _, s := range segmenter.Tokenize(text) {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		out = append(out, Sentence{Text: trimmed, Start: s.Start, End: s.End})
	}
	return out
}
