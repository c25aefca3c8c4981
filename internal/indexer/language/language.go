// Package language provides the per-locale text rules used while indexing:
// word splitting, stemming, stop-word filtering and the JavaScript sources
// the browser needs to normalize queries the same way.
package language

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/blevesearch/segment"
)

// Ruleset is the capability set of one search language.
type Ruleset interface {
	// Lang is the language code, e.g. "en".
	Lang() string
	// Name is the English language name, e.g. "English".
	Name() string
	Split(text string) []string
	// Stem lower-cases word and reduces it to its stem.
	Stem(word string) string
	// WordFilter reports whether word should be registered in the index.
	// It is applied after stemming.
	WordFilter(word string) bool
	// StopWords returns the stop words in sorted order.
	StopWords() []string
	// JSStemmerCode is the stemmer source inserted into language_data.js.
	JSStemmerCode() string
	// JSSplitterCode is a language specific splitter. Empty means the
	// default splitter is used.
	JSSplitterCode() string
	// JSStemmerRawCode names the snowball stemmer file for this language,
	// or "" when the language ships its own stemmer code.
	JSStemmerRawCode() string
}

type rules struct {
	lang      string
	name      string
	stem      func(string) string
	stopWords map[string]struct{}
	jsStemmer string
	jsRaw     string
}

func (r *rules) Lang() string { return r.lang }

func (r *rules) Name() string { return r.name }

func (r *rules) Split(text string) []string {
	return splitWords(text)
}

func (r *rules) Stem(word string) string {
	return r.stem(strings.ToLower(word))
}

func (r *rules) WordFilter(word string) bool {
	if word == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(word)
	if isHiragana(first) && utf8.RuneCountInString(word) < 3 {
		return false
	}
	if first < 256 {
		if utf8.RuneCountInString(word) < 3 {
			return false
		}
		if _, stop := r.stopWords[word]; stop {
			return false
		}
	}
	return !isDigits(word)
}

func (r *rules) StopWords() []string {
	words := make([]string, 0, len(r.stopWords))
	for w := range r.stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}

func (r *rules) JSStemmerCode() string { return r.jsStemmer }

func (r *rules) JSSplitterCode() string { return "" }

func (r *rules) JSStemmerRawCode() string { return r.jsRaw }

// splitWords segments text on Unicode word boundaries and keeps the letter,
// number, kana and ideographic segments.
func splitWords(text string) []string {
	seg := segment.NewWordSegmenterDirect([]byte(text))
	var words []string
	for seg.Segment() {
		switch seg.Type() {
		case segment.Letter, segment.Number, segment.Kana, segment.Ideo:
			words = append(words, seg.Text())
		}
	}
	return words
}

func isHiragana(r rune) bool {
	return r > 12353 && r < 12436
}

func isDigits(word string) bool {
	for _, r := range word {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func stopSet(words string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		set[w] = struct{}{}
	}
	return set
}
