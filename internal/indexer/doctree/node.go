// Package doctree models the parsed document trees fed to the index builder
// and loads them from YAML or JSON document files.
package doctree

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind tags the content type of a node.
type Kind int

const (
	Element Kind = iota
	Root
	Section
	Paragraph
	Text
	Title
	Comment
	Raw
	Meta
)

var kindNames = [...]string{
	Element:   "element",
	Root:      "document",
	Section:   "section",
	Paragraph: "paragraph",
	Text:      "text",
	Title:     "title",
	Comment:   "comment",
	Raw:       "raw",
	Meta:      "meta",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps a kind name back to its Kind. Unknown names are plain
// elements so foreign node types are still traversed.
func ParseKind(name string) Kind {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == name {
			return Kind(k)
		}
	}
	return Element
}

func (k Kind) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return fmt.Errorf("node kind: %w", err)
	}
	*k = ParseKind(name)
	return nil
}

// Node is one element of a document tree. Text holds the content of Text,
// Comment and Raw nodes.
type Node struct {
	Kind     Kind              `yaml:"kind"`
	Text     string            `yaml:"text,omitempty"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Children []*Node           `yaml:"children,omitempty"`
}

// Attr returns the named attribute and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// AsText concatenates the text of n and all of its descendants in document
// order.
func (n *Node) AsText() string {
	var b strings.Builder
	n.appendText(&b)
	return b.String()
}

func (n *Node) appendText(b *strings.Builder) {
	b.WriteString(n.Text)
	for _, c := range n.Children {
		c.appendText(b)
	}
}

// New builds a node of kind k with children.
func New(k Kind, children ...*Node) *Node {
	return &Node{Kind: k, Children: children}
}

// NewText builds a text node.
func NewText(text string) *Node {
	return &Node{Kind: Text, Text: text}
}

// NewTitle builds a title node holding text.
func NewTitle(text string) *Node {
	return New(Title, NewText(text))
}

// NewComment builds a comment node.
func NewComment(text string) *Node {
	return &Node{Kind: Comment, Text: text}
}

// NewRaw builds a raw content node with the given space-separated formats.
func NewRaw(format, text string) *Node {
	return &Node{Kind: Raw, Text: text, Attrs: map[string]string{"format": format}}
}

// NewMeta builds a meta node. An empty lang leaves the attribute unset.
func NewMeta(name, content, lang string) *Node {
	attrs := map[string]string{"name": name, "content": content}
	if lang != "" {
		attrs["lang"] = lang
	}
	return &Node{Kind: Meta, Attrs: attrs}
}
