package language

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

var (
	//go:embed js/porter-stemmer.js
	porterStemmerJS string

	//go:embed js/dummy-stemmer.js
	dummyStemmerJS string

	//go:embed js/splitter.js
	defaultSplitterJS string
)

// DefaultSplitterCode is the query splitter used when a ruleset has none.
func DefaultSplitterCode() string {
	return defaultSplitterJS
}

// SplitterCode returns the ruleset's splitter or the default one.
func SplitterCode(r Ruleset) string {
	if code := r.JSSplitterCode(); code != "" {
		return code
	}
	return defaultSplitterJS
}

// StemmerCode returns the stemmer source for language_data.js. When dir holds
// the snowball stemmer sources and the ruleset names one, the code is
// base-stemmer.js, the language file and an assignment of its constructor to
// Stemmer. Otherwise it is the ruleset's own stemmer code.
func StemmerCode(r Ruleset, dir string) (string, error) {
	raw := r.JSStemmerRawCode()
	if dir == "" || raw == "" {
		return r.JSStemmerCode(), nil
	}
	base, err := os.ReadFile(filepath.Join(dir, "base-stemmer.js"))
	if err != nil {
		return "", fmt.Errorf("reading base stemmer: %w", err)
	}
	lang, err := os.ReadFile(filepath.Join(dir, raw))
	if err != nil {
		return "", fmt.Errorf("reading %s stemmer: %w", r.Name(), err)
	}
	return fmt.Sprintf("%s\n%s\nStemmer = %sStemmer;", base, lang, r.Name()), nil
}

// StemmerRawFiles lists the non-minified stemmer files to ship next to the
// index, or nil when the ruleset does not use a snowball stemmer file.
func StemmerRawFiles(r Ruleset, dir string) []string {
	raw := r.JSStemmerRawCode()
	if dir == "" || raw == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "base-stemmer.js"),
		filepath.Join(dir, raw),
	}
}
