package language

import (
	"strings"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/danish"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/finnish"
	"github.com/blevesearch/snowballstem/french"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/hungarian"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/norwegian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/romanian"
	"github.com/blevesearch/snowballstem/russian"
	"github.com/blevesearch/snowballstem/spanish"
	"github.com/blevesearch/snowballstem/swedish"
	"github.com/blevesearch/snowballstem/turkish"
)

type snowballLanguage struct {
	name      string
	stem      func(*snowballstem.Env) bool
	stopWords string
}

var snowballLanguages = map[string]snowballLanguage{
	"da": {"Danish", danish.Stem, danishStopWords},
	"de": {"German", german.Stem, germanStopWords},
	"es": {"Spanish", spanish.Stem, spanishStopWords},
	"fi": {"Finnish", finnish.Stem, finnishStopWords},
	"fr": {"French", french.Stem, frenchStopWords},
	"hu": {"Hungarian", hungarian.Stem, hungarianStopWords},
	"it": {"Italian", italian.Stem, italianStopWords},
	"nl": {"Dutch", dutch.Stem, dutchStopWords},
	"no": {"Norwegian", norwegian.Stem, norwegianStopWords},
	"pt": {"Portuguese", portuguese.Stem, portugueseStopWords},
	"ro": {"Romanian", romanian.Stem, ""},
	"ru": {"Russian", russian.Stem, russianStopWords},
	"sv": {"Swedish", swedish.Stem, swedishStopWords},
	"tr": {"Turkish", turkish.Stem, ""},
}

// English returns the English ruleset backed by the Porter stemmer.
func English() Ruleset {
	return &rules{
		lang:      "en",
		name:      "English",
		stem:      porterstemmer.StemString,
		stopWords: stopSet(englishStopWords),
		jsStemmer: porterStemmerJS,
	}
}

// Snowball returns the snowball-stemmed ruleset for code, or English when
// code has no snowball stemmer.
func Snowball(code string) Ruleset {
	sl, ok := snowballLanguages[code]
	if !ok {
		return English()
	}
	stem := sl.stem
	return &rules{
		lang: code,
		name: sl.name,
		stem: func(word string) string {
			env := snowballstem.NewEnv(word)
			stem(env)
			return env.Current()
		},
		stopWords: stopSet(sl.stopWords),
		jsStemmer: dummyStemmerJS,
		jsRaw:     strings.ToLower(sl.name) + "-stemmer.js",
	}
}
