// Package snapshot serializes frozen indexes. The structured format is a
// checksummed, compressed msgpack document used to resume incremental builds;
// the js format wraps the same document as a Search.setIndex(...) call for the
// browser search client.
package snapshot

import (
	"fmt"
	"io"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	apperrors "github.com/Adithya-Monish-Kumar-K/searchindex/pkg/errors"
)

// Format dumps and loads frozen indexes.
type Format interface {
	Name() string
	Dump(w io.Writer, f *index.Frozen) error
	Load(r io.Reader) (*index.Frozen, error)
}

var formats = map[string]Format{
	"msgpack": Msgpack,
	"pickle":  Msgpack,
	"js":      JS,
	"jsdump":  JS,
}

// Lookup returns the format registered under name. "pickle" is accepted as an
// alias of the structured format and "jsdump" of the js format.
func Lookup(name string) (Format, error) {
	f, ok := formats[name]
	if !ok {
		return nil, fmt.Errorf("snapshot format %q: %w", name, apperrors.ErrUnsupported)
	}
	return f, nil
}

// wire is the serialized document shared by all formats. Term postings with a
// single document are written as a bare index instead of a list.
type wire struct {
	Docnames   []string                  `codec:"docnames"`
	Filenames  []string                  `codec:"filenames"`
	Titles     []string                  `codec:"titles"`
	Terms      map[string]any            `codec:"terms"`
	TitleTerms map[string]any            `codec:"titleterms"`
	Objects    map[string][]index.Object `codec:"objects"`
	ObjTypes   map[int]string            `codec:"objtypes"`
	ObjNames   map[int]index.ObjName     `codec:"objnames"`
	EnvVersion string                    `codec:"envversion"`
}

var requiredFields = []string{"docnames", "filenames", "titles", "terms", "titleterms", "envversion"}

func toWire(f *index.Frozen) *wire {
	return &wire{
		Docnames:   nonNil(f.Docnames),
		Filenames:  nonNil(f.Filenames),
		Titles:     nonNil(f.Titles),
		Terms:      compactTerms(f.Terms),
		TitleTerms: compactTerms(f.TitleTerms),
		Objects:    orEmpty(f.Objects),
		ObjTypes:   orEmpty(f.ObjTypes),
		ObjNames:   orEmpty(f.ObjNames),
		EnvVersion: f.EnvVersion,
	}
}

func compactTerms(terms map[string][]int) map[string]any {
	out := make(map[string]any, len(terms))
	for term, postings := range terms {
		if len(postings) == 1 {
			out[term] = postings[0]
		} else {
			out[term] = postings
		}
	}
	return out
}

func fromWire(w *wire) (*index.Frozen, error) {
	terms, err := expandTerms(w.Terms)
	if err != nil {
		return nil, err
	}
	titleTerms, err := expandTerms(w.TitleTerms)
	if err != nil {
		return nil, err
	}
	return &index.Frozen{
		Docnames:   nonNil(w.Docnames),
		Filenames:  nonNil(w.Filenames),
		Titles:     nonNil(w.Titles),
		Terms:      terms,
		TitleTerms: titleTerms,
		Objects:    orEmpty(w.Objects),
		ObjTypes:   orEmpty(w.ObjTypes),
		ObjNames:   orEmpty(w.ObjNames),
		EnvVersion: w.EnvVersion,
	}, nil
}

func expandTerms(terms map[string]any) (map[string][]int, error) {
	out := make(map[string][]int, len(terms))
	for term, v := range terms {
		var postings []int
		switch x := v.(type) {
		case []any:
			postings = make([]int, 0, len(x))
			for _, e := range x {
				i, ok := asInt(e)
				if !ok {
					return nil, fmt.Errorf("term %q has posting of type %T: %w", term, e, apperrors.ErrFormat)
				}
				postings = append(postings, i)
			}
		default:
			i, ok := asInt(x)
			if !ok {
				return nil, fmt.Errorf("term %q has postings of type %T: %w", term, v, apperrors.ErrFormat)
			}
			postings = []int{i}
		}
		out[term] = postings
	}
	return out, nil
}

func asInt(v any) (int, bool) {
	switch x := v.(type) {
	case int:
		return x, true
	case int64:
		return int(x), true
	case uint64:
		return int(x), true
	case float64:
		if x == float64(int(x)) {
			return int(x), true
		}
	}
	return 0, false
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmpty[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return m
}
