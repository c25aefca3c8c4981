package doctree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

// Document is one parsed source document ready to be fed.
type Document struct {
	Docname  string `yaml:"docname"`
	Filename string `yaml:"filename"`
	Title    string `yaml:"title"`
	Tree     *Node  `yaml:"tree"`
}

// Decode reads a single document. YAML and JSON are both accepted.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if doc.Docname == "" {
		return nil, fmt.Errorf("document without docname: %w", apperrors.ErrInvalidInput)
	}
	if doc.Tree == nil {
		doc.Tree = New(Root)
	}
	return &doc, nil
}

// Load reads the document file at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening document %s: %w", path, err)
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// LoadDir loads every .yaml, .yml and .json file below dir, sorted by
// docname. Two files declaring the same docname are rejected.
func LoadDir(dir string) ([]*Document, error) {
	var docs []*Document
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml", ".json":
		default:
			return nil
		}
		doc, err := Load(path)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading documents from %s: %w", dir, err)
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Docname < docs[j].Docname })
	for i := 1; i < len(docs); i++ {
		if docs[i].Docname == docs[i-1].Docname {
			return nil, apperrors.Newf(apperrors.ErrInvalidInput, apperrors.ExitUsage,
				"docname %q declared by two files", docs[i].Docname)
		}
	}
	return docs, nil
}
