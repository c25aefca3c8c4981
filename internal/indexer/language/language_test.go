package language

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveFallback(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		code string
		want string
	}{
		{"fr", "fr"},
		{"pt_BR", "pt"},
		{"de-AT", "de"},
		{"xx_YY", "en"},
		{"xx", "en"},
		{"", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, reg.Resolve(tt.code).Lang())
		})
	}
}

func TestResolveRegisteredBaseCode(t *testing.T) {
	reg := NewRegistry()
	reg.Register("xx", func() Ruleset {
		r := English().(*rules)
		r.lang = "xx"
		r.name = "Xish"
		return r
	})

	assert.Equal(t, "xx", reg.Resolve("xx_YY").Lang())
	assert.Contains(t, reg.Codes(), "xx")
}

func TestEnglishStemAndFilter(t *testing.T) {
	en := English()

	assert.Equal(t, "widget", en.Stem("Widgets"))
	assert.Equal(t, "so", en.Stem("SOS"))
	assert.False(t, en.WordFilter("so"))
	assert.True(t, en.WordFilter("sos"))
	assert.Equal(t, "great", en.Stem("great"))
}

func TestWordFilter(t *testing.T) {
	en := English()

	tests := []struct {
		word string
		keep bool
	}{
		{"", false},
		{"x", false},
		{"go", false},
		{"ab", false},
		{"é", false},
		{"the", false},
		{"api", true},
		{"2024", false},
		{"v2", false},
		{"v10", true},
		{"日本", true},
		{"あい", false},
		{"あいう", true},
		{"index", true},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.keep, en.WordFilter(tt.word))
		})
	}
}

func TestSplit(t *testing.T) {
	words := English().Split("Hello, world!  42 -- foo")
	assert.Equal(t, []string{"Hello", "world", "42", "foo"}, words)
	assert.Empty(t, English().Split(" ... "))
}

func TestSnowballRuleset(t *testing.T) {
	fr := Snowball("fr")

	assert.Equal(t, "French", fr.Name())
	assert.Equal(t, fr.Stem("maison"), fr.Stem("Maisons"))
	assert.False(t, fr.WordFilter("les"))
	assert.Equal(t, "french-stemmer.js", fr.JSStemmerRawCode())

	assert.Equal(t, "en", Snowball("zz").Lang())
	assert.Empty(t, Snowball("tr").StopWords())
}

func TestStopWordsSorted(t *testing.T) {
	words := English().StopWords()
	assert.True(t, sort.StringsAreSorted(words))
	assert.Len(t, words, 33)
	assert.Contains(t, words, "near")
	assert.NotContains(t, words, "so")
}

func TestStemmerCode(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "base-stemmer.js"), []byte("BASE"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "french-stemmer.js"), []byte("FRENCH"), 0o644))

	code, err := StemmerCode(Snowball("fr"), dir)
	require.NoError(t, err)
	assert.Equal(t, "BASE\nFRENCH\nStemmer = FrenchStemmer;", code)
	assert.Len(t, StemmerRawFiles(Snowball("fr"), dir), 2)

	code, err = StemmerCode(English(), dir)
	require.NoError(t, err)
	assert.Contains(t, code, "this.stemWord")
	assert.Nil(t, StemmerRawFiles(English(), dir))

	code, err = StemmerCode(Snowball("fr"), "")
	require.NoError(t, err)
	assert.Contains(t, code, "return w;")

	_, err = StemmerCode(Snowball("de"), dir)
	assert.Error(t, err)
}

func TestSplitterCode(t *testing.T) {
	assert.Contains(t, SplitterCode(English()), "splitQuery")
	assert.Equal(t, DefaultSplitterCode(), SplitterCode(Snowball("de")))
}
