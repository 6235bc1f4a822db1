package mindrisk

import (
	"strings"
	"sync"
	"unicode"

	"github.com/bbalet/stopwords"
)

// stopWordLanguage is the ISO 639-1 code passed to the stopwords library.
const stopWordLanguage = "en"

var stopWordCache sync.Map // word -> bool

// IsStopWord reports whether word is an English stop word.
//
// The stopwords library doesn't export its lists, so a word is tested by
// cleaning it on its own: stop words come back empty. Words without letters
// are never stop words because the library's segmenter drops them anyway.
func IsStopWord(word string) bool {
	word = strings.ToLower(word)
	if cached, ok := stopWordCache.Load(word); ok {
		return cached.(bool)
	}

	isStop := false
	if hasLetter(word) {
		cleaned := strings.TrimSpace(stopwords.CleanString(word, stopWordLanguage, false))
		isStop = cleaned == ""
	}
	stopWordCache.Store(word, isStop)
	return isStop
}

func hasLetter(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
