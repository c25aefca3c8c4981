// Package collector walks a document tree once and gathers the raw body and
// title words to index, applying per-kind extraction rules.
package collector

import (
	"regexp"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/doctree"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
)

var (
	styleRe  = regexp.MustCompile(`(?is)<style.*?</style>`)
	scriptRe = regexp.MustCompile(`(?is)<script.*?</script>`)
	tagRe    = regexp.MustCompile(`<[^<]+?>`)
)

// Words holds the words found in one document, unstemmed, in order of
// appearance and with duplicates.
type Words struct {
	Body  []string
	Title []string
}

type handler func(c *collector, n *doctree.Node) doctree.Action

var handlers = map[doctree.Kind]handler{
	doctree.Comment: skipComment,
	doctree.Raw:     collectRaw,
	doctree.Text:    collectText,
	doctree.Title:   collectTitle,
	doctree.Meta:    collectMeta,
}

type collector struct {
	lang  language.Ruleset
	words Words
	// inTitle routes text and raw HTML words to the title words.
	inTitle bool
}

// Collect extracts the words of tree using lang for splitting.
func Collect(tree *doctree.Node, lang language.Ruleset) Words {
	c := &collector{lang: lang}
	doctree.Walk(tree, c)
	return c.words
}

func (c *collector) add(words []string) {
	if c.inTitle {
		c.words.Title = append(c.words.Title, words...)
		return
	}
	c.words.Body = append(c.words.Body, words...)
}

func (c *collector) Visit(n *doctree.Node) doctree.Action {
	if h, ok := handlers[n.Kind]; ok {
		return h(c, n)
	}
	return doctree.Continue
}

func skipComment(*collector, *doctree.Node) doctree.Action {
	return doctree.SkipChildren
}

func collectRaw(c *collector, n *doctree.Node) doctree.Action {
	format, _ := n.Attr("format")
	for _, f := range strings.Fields(format) {
		if f == "html" {
			text := styleRe.ReplaceAllString(n.AsText(), "")
			text = scriptRe.ReplaceAllString(text, "")
			text = tagRe.ReplaceAllString(text, "")
			c.add(c.lang.Split(text))
			break
		}
	}
	return doctree.SkipChildren
}

func collectText(c *collector, n *doctree.Node) doctree.Action {
	c.add(c.lang.Split(n.Text))
	return doctree.Continue
}

// collectTitle walks the title subtree with the body rules and sends its
// words to the title words only.
func collectTitle(c *collector, n *doctree.Node) doctree.Action {
	if c.inTitle {
		c.add(c.lang.Split(n.Text))
		return doctree.Continue
	}
	c.inTitle = true
	c.add(c.lang.Split(n.Text))
	for _, child := range n.Children {
		doctree.Walk(child, c)
	}
	c.inTitle = false
	return doctree.SkipChildren
}

func collectMeta(c *collector, n *doctree.Node) doctree.Action {
	if name, _ := n.Attr("name"); name != "keywords" {
		return doctree.Continue
	}
	if lang, ok := n.Attr("lang"); ok && lang != c.lang.Lang() {
		return doctree.Continue
	}
	content, _ := n.Attr("content")
	for _, kw := range strings.Split(content, ",") {
		c.words.Body = append(c.words.Body, strings.TrimSpace(kw))
	}
	return doctree.Continue
}
