package indexer

import (
	"fmt"
	"os"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/snapshot"
)

// SearchToolContext is handed to the search page template.
type SearchToolContext struct {
	StemmingCode string `json:"search_language_stemming_code"`
	// StopWords is a JavaScript array literal of the sorted stop words.
	StopWords    string `json:"search_language_stop_words"`
	ScorerTool   string `json:"search_scorer_tool"`
	SplitterCode string `json:"search_word_splitter_code"`
}

// SearchToolContext collects the language specific sources used by the
// browser search client.
func (c *Coordinator) SearchToolContext() (SearchToolContext, error) {
	stemming, err := language.StemmerCode(c.lang, c.cfg.JSStemmerDir)
	if err != nil {
		return SearchToolContext{}, err
	}
	stopWords, err := snapshot.JSLiteral(c.lang.StopWords())
	if err != nil {
		return SearchToolContext{}, err
	}
	var scorer string
	if c.cfg.ScorerPath != "" {
		data, err := os.ReadFile(c.cfg.ScorerPath)
		if err != nil {
			return SearchToolContext{}, fmt.Errorf("reading scorer %s: %w", c.cfg.ScorerPath, err)
		}
		scorer = string(data)
	}
	return SearchToolContext{
		StemmingCode: stemming,
		StopWords:    stopWords,
		ScorerTool:   scorer,
		SplitterCode: language.SplitterCode(c.lang),
	}, nil
}

const languageDataHeader = `/*
 * language_data.js
 * ~~~~~~~~~~~~~~~~
 *
 * This script contains the language-specific data used by searchtools.js,
 * namely the list of stopwords, stemmer, scorer and splitter.
 */

`

// RenderLanguageData renders language_data.js from the search tool context.
func (c *Coordinator) RenderLanguageData() ([]byte, error) {
	ctx, err := c.SearchToolContext()
	if err != nil {
		return nil, err
	}
	var b strings.Builder
	b.WriteString(languageDataHeader)
	fmt.Fprintf(&b, "var stopwords = %s;\n", ctx.StopWords)
	if ctx.StemmingCode != "" {
		b.WriteString("\n\n/* Non-minified version is copied as a separate JS file, if available */\n")
		b.WriteString(ctx.StemmingCode)
		b.WriteString("\n")
	}
	if ctx.ScorerTool != "" {
		b.WriteString("\n")
		b.WriteString(ctx.ScorerTool)
		b.WriteString("\n")
	}
	if ctx.SplitterCode != "" {
		b.WriteString("\n")
		b.WriteString(ctx.SplitterCode)
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
