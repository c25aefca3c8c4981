package index

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/domain"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

// Object is one catalog entry. It encodes as a five-element array.
type Object struct {
	_struct   bool `codec:",toarray"`
	DocIndex  int
	TypeIndex int
	Priority  int
	// Anchor is "" when the anchor equals the full name and "-" when it is
	// the object type, a dash and the full name.
	Anchor string
	Name   string
}

// ObjName describes a registered object type. It encodes as
// [domain, type, display name].
type ObjName struct {
	_struct bool `codec:",toarray"`
	Domain  string
	Type    string
	Display string
}

// Frozen is an immutable snapshot of a store. Docnames, Filenames and Titles
// are parallel lists; term postings are sorted indices into them.
type Frozen struct {
	Docnames   []string
	Filenames  []string
	Titles     []string
	Terms      map[string][]int
	TitleTerms map[string][]int
	Objects    map[string][]Object
	// ObjTypes maps a type index to "domain:type".
	ObjTypes   map[int]string
	ObjNames   map[int]ObjName
	EnvVersion string
}

// Objects builds the object catalog for the documents in fn2index, grouped by
// the display-name prefix before its last dot.
func (s *Store) Objects(fn2index map[string]int) map[string][]Object {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectsLocked(fn2index)
}

func (s *Store) objectsLocked(fn2index map[string]int) map[string][]Object {
	rv := make(map[string][]Object)
	for _, d := range s.domains {
		for _, e := range domain.SortedObjects(d) {
			docIndex, ok := fn2index[e.Docname]
			if !ok || e.Priority < 0 {
				continue
			}
			fullName := html.EscapeString(e.FullName)
			dispName := html.EscapeString(e.DispName)
			prefix, name := "", dispName
			if i := strings.LastIndex(dispName, "."); i >= 0 {
				prefix, name = dispName[:i], dispName[i+1:]
			}

			key := objTypeKey{domain: d.Name(), objType: e.Type}
			typeIndex, ok := s.objTypes[key]
			if !ok {
				typeIndex = len(s.objTypes)
				s.objTypes[key] = typeIndex
				display, declared := d.TypeDisplayName(e.Type)
				if !declared {
					display = e.Type
				}
				s.objNames[typeIndex] = ObjName{Domain: d.Name(), Type: e.Type, Display: display}
			}

			var anchor string
			switch e.Anchor {
			case fullName:
				anchor = ""
			case e.Type + "-" + fullName:
				anchor = "-"
			default:
				anchor = e.Anchor
			}
			rv[prefix] = append(rv[prefix], Object{
				DocIndex:  docIndex,
				TypeIndex: typeIndex,
				Priority:  e.Priority,
				Anchor:    anchor,
				Name:      name,
			})
		}
	}
	return rv
}

// Freeze snapshots the store. Equal store contents always freeze to equal
// snapshots. Terms whose documents were all removed are omitted.
func (s *Store) Freeze() *Frozen {
	s.mu.Lock()
	defer s.mu.Unlock()

	docnames := make([]string, 0, len(s.titles))
	for doc := range s.titles {
		docnames = append(docnames, doc)
	}
	sort.Strings(docnames)

	f := &Frozen{
		Docnames:   docnames,
		Filenames:  make([]string, len(docnames)),
		Titles:     make([]string, len(docnames)),
		EnvVersion: s.envVersion,
	}
	fn2index := make(map[string]int, len(docnames))
	for i, doc := range docnames {
		fn2index[doc] = i
		f.Titles[i] = s.titles[doc]
		f.Filenames[i] = s.filenames[doc]
	}
	f.Terms = frozenTerms(s.mapping, fn2index)
	f.TitleTerms = frozenTerms(s.titleMapping, fn2index)

	s.objTypes = make(map[objTypeKey]int)
	s.objNames = make(map[int]ObjName)
	f.Objects = s.objectsLocked(fn2index)
	f.ObjTypes = make(map[int]string, len(s.objTypes))
	for k, i := range s.objTypes {
		f.ObjTypes[i] = k.domain + ":" + k.objType
	}
	f.ObjNames = make(map[int]ObjName, len(s.objNames))
	for i, n := range s.objNames {
		f.ObjNames[i] = n
	}
	return f
}

func frozenTerms(m termMap, fn2index map[string]int) map[string][]int {
	out := make(map[string][]int, len(m))
	for term, set := range m {
		if postings := set.postings(fn2index); len(postings) > 0 {
			out[term] = postings
		}
	}
	return out
}

// Load replaces the store contents with a snapshot. Snapshots of another
// environment version or with inconsistent fields are rejected with an error
// wrapping ErrFormat and leave the store untouched. Objects and object types
// are recomputed at freeze time and are not restored.
func (s *Store) Load(f *Frozen) error {
	if f == nil {
		return fmt.Errorf("empty snapshot: %w", apperrors.ErrFormat)
	}
	if f.EnvVersion != s.envVersion {
		return fmt.Errorf("snapshot envversion %q, want %q: %w", f.EnvVersion, s.envVersion, apperrors.ErrFormat)
	}
	n := len(f.Docnames)
	if len(f.Filenames) != n || len(f.Titles) != n {
		return fmt.Errorf("snapshot has %d docnames, %d filenames and %d titles: %w",
			n, len(f.Filenames), len(f.Titles), apperrors.ErrFormat)
	}

	titles := make(map[string]string, n)
	filenames := make(map[string]string, n)
	for i, doc := range f.Docnames {
		if _, dup := titles[doc]; dup {
			return fmt.Errorf("snapshot lists docname %q twice: %w", doc, apperrors.ErrFormat)
		}
		titles[doc] = f.Titles[i]
		filenames[doc] = f.Filenames[i]
	}
	mapping, err := loadTerms(f.Terms, f.Docnames)
	if err != nil {
		return err
	}
	titleMapping, err := loadTerms(f.TitleTerms, f.Docnames)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.titles = titles
	s.filenames = filenames
	s.mapping = mapping
	s.titleMapping = titleMapping
	s.logger.Debug("index loaded from snapshot", "docs", n, "terms", len(mapping), "title_terms", len(titleMapping))
	return nil
}

func loadTerms(terms map[string][]int, index2fn []string) (termMap, error) {
	out := make(termMap, len(terms))
	for term, postings := range terms {
		for _, i := range postings {
			if i < 0 || i >= len(index2fn) {
				return nil, fmt.Errorf("term %q references document %d of %d: %w",
					term, i, len(index2fn), apperrors.ErrFormat)
			}
			out.add(term, index2fn[i])
		}
	}
	return out, nil
}
