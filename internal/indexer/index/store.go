// Package index holds the incremental inverted index of a documentation
// build: the document registry, body and title term mappings, the object
// catalog and the stem cache. Stores can be pruned, merged, frozen into a
// snapshot and reloaded from one.
package index

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/collector"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/doctree"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/domain"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

type Options struct {
	// EnvVersion tags frozen snapshots; Load rejects any other version.
	EnvVersion string
	// Domains are read at freeze time for the object catalog.
	Domains []domain.Domain
	// StemCacheSize bounds the stem cache. Zero uses DefaultStemCacheSize.
	StemCacheSize int
}

type objTypeKey struct {
	domain  string
	objType string
}

type Store struct {
	mu           sync.RWMutex
	lang         language.Ruleset
	envVersion   string
	domains      []domain.Domain
	titles       map[string]string
	filenames    map[string]string
	mapping      termMap
	titleMapping termMap
	stems        *StemCache
	stemSize     int
	objTypes     map[objTypeKey]int
	objNames     map[int]ObjName
	logger       *slog.Logger
}

func NewStore(lang language.Ruleset, opts Options) *Store {
	return &Store{
		lang:         lang,
		envVersion:   opts.EnvVersion,
		domains:      domain.Sorted(opts.Domains),
		titles:       make(map[string]string),
		filenames:    make(map[string]string),
		mapping:      make(termMap),
		titleMapping: make(termMap),
		stems:        NewStemCache(opts.StemCacheSize),
		stemSize:     opts.StemCacheSize,
		objTypes:     make(map[objTypeKey]int),
		objNames:     make(map[int]ObjName),
		logger:       slog.Default().With("component", "index", "lang", lang.Lang()),
	}
}

// NewPartial returns an empty store with the same language, version and
// domains, for one worker of a parallel build.
func (s *Store) NewPartial() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return NewStore(s.lang, Options{
		EnvVersion:    s.envVersion,
		Domains:       s.domains,
		StemCacheSize: s.stemSize,
	})
}

// Feed indexes one document tree. Feeding a docname twice without removing it
// first accumulates both versions.
func (s *Store) Feed(docname, filename, title string, tree *doctree.Node) error {
	if docname == "" {
		return fmt.Errorf("feeding document without docname: %w", apperrors.ErrInvalidInput)
	}
	words := collector.Collect(tree, s.lang)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.titles[docname] = title
	s.filenames[docname] = filename

	for _, word := range words.Title {
		stemmed := s.stem(word)
		if s.lang.WordFilter(stemmed) {
			s.titleMapping.add(stemmed, docname)
		} else if raw := strings.ToLower(word); s.lang.WordFilter(raw) {
			// the stemmer must not remove a searchable word
			s.titleMapping.add(raw, docname)
		}
	}

	for _, word := range words.Body {
		term := s.stem(word)
		if !s.lang.WordFilter(term) {
			raw := strings.ToLower(word)
			if !s.lang.WordFilter(raw) {
				continue
			}
			term = raw
		}
		if s.titleMapping.has(term, docname) {
			continue
		}
		s.mapping.add(term, docname)
	}
	return nil
}

func (s *Store) stem(word string) string {
	return s.stems.Stem(word, s.lang.Stem)
}

// Prune removes every document not in keep, together with all of its term
// references.
func (s *Store) Prune(keep []string) {
	keepSet := make(map[string]struct{}, len(keep))
	for _, d := range keep {
		keepSet[d] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for doc := range s.titles {
		if _, ok := keepSet[doc]; !ok {
			delete(s.titles, doc)
			delete(s.filenames, doc)
			removed++
		}
	}
	s.mapping.retain(keepSet)
	s.titleMapping.retain(keepSet)
	s.logger.Debug("index pruned", "removed", removed, "remaining", len(s.titles))
}

// Remove drops a single document. It reports whether the document was known.
func (s *Store) Remove(docname string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, known := s.titles[docname]
	delete(s.titles, docname)
	delete(s.filenames, docname)
	s.mapping.drop(docname)
	s.titleMapping.drop(docname)
	return known
}

// Merge folds the documents of a partial store into s. Partial stores must
// not share docnames with s: on overlap nothing is merged and an error
// wrapping ErrMergeConflict lists the shared docnames.
func (s *Store) Merge(other *Store) error {
	if other == nil {
		return nil
	}
	if other == s {
		return fmt.Errorf("merging a store into itself: %w", apperrors.ErrInvalidInput)
	}

	other.mu.RLock()
	if other.lang.Lang() != s.lang.Lang() {
		other.mu.RUnlock()
		return fmt.Errorf("merging %s partial into %s store: %w",
			other.lang.Lang(), s.lang.Lang(), apperrors.ErrInvalidInput)
	}
	titles := make(map[string]string, len(other.titles))
	filenames := make(map[string]string, len(other.filenames))
	for doc, title := range other.titles {
		titles[doc] = title
		filenames[doc] = other.filenames[doc]
	}
	mapping := other.mapping.clone()
	titleMapping := other.titleMapping.clone()
	other.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	var shared []string
	for doc := range titles {
		if _, ok := s.titles[doc]; ok {
			shared = append(shared, doc)
		}
	}
	if len(shared) > 0 {
		sort.Strings(shared)
		return apperrors.Newf(apperrors.ErrMergeConflict, apperrors.ExitConflict,
			"docnames %s", strings.Join(shared, ", "))
	}

	for doc, title := range titles {
		s.titles[doc] = title
		s.filenames[doc] = filenames[doc]
	}
	s.mapping.union(mapping)
	s.titleMapping.union(titleMapping)
	s.logger.Debug("partial index merged", "docs", len(titles), "total", len(s.titles))
	return nil
}

// Docnames returns the registered documents in sorted order.
func (s *Store) Docnames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]string, 0, len(s.titles))
	for doc := range s.titles {
		docs = append(docs, doc)
	}
	sort.Strings(docs)
	return docs
}

func (s *Store) Title(docname string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.titles[docname]
	return t, ok
}

func (s *Store) Filename(docname string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.filenames[docname]
	return f, ok
}

// BodyDocs returns the sorted documents whose body contains term.
func (s *Store) BodyDocs(term string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mapping[term].sorted()
}

// TitleDocs returns the sorted documents whose title contains term.
func (s *Store) TitleDocs(term string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.titleMapping[term].sorted()
}

// Len returns the number of registered documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.titles)
}

// TermCounts returns the number of distinct body and title terms.
func (s *Store) TermCounts() (body, title int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mapping), len(s.titleMapping)
}

func (s *Store) Language() language.Ruleset { return s.lang }

func (s *Store) EnvVersion() string { return s.envVersion }

func (s *Store) StemCache() *StemCache { return s.stems }

// Label describes the search language, e.g. "English (code: en)".
func (s *Store) Label() string {
	return fmt.Sprintf("%s (code: %s)", s.lang.Name(), s.lang.Lang())
}
