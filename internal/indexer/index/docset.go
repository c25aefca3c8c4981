package index

import "sort"

// docSet is the set of docnames a term maps to.
type docSet map[string]struct{}

// termMap maps a term to the documents containing it.
type termMap map[string]docSet

func (m termMap) add(term, docname string) {
	set, ok := m[term]
	if !ok {
		set = make(docSet)
		m[term] = set
	}
	set[docname] = struct{}{}
}

func (m termMap) has(term, docname string) bool {
	_, ok := m[term][docname]
	return ok
}

// retain drops every docname not in keep and removes terms left empty.
func (m termMap) retain(keep map[string]struct{}) {
	for term, set := range m {
		for doc := range set {
			if _, ok := keep[doc]; !ok {
				delete(set, doc)
			}
		}
		if len(set) == 0 {
			delete(m, term)
		}
	}
}

// drop removes docname from every term and removes terms left empty.
func (m termMap) drop(docname string) {
	for term, set := range m {
		delete(set, docname)
		if len(set) == 0 {
			delete(m, term)
		}
	}
}

func (m termMap) union(other termMap) {
	for term, set := range other {
		for doc := range set {
			m.add(term, doc)
		}
	}
}

func (m termMap) clone() termMap {
	out := make(termMap, len(m))
	out.union(m)
	return out
}

func (s docSet) sorted() []string {
	out := make([]string, 0, len(s))
	for doc := range s {
		out = append(out, doc)
	}
	sort.Strings(out)
	return out
}

// postings resolves docnames to their sorted snapshot indices, skipping
// documents absent from fn2index.
func (s docSet) postings(fn2index map[string]int) []int {
	out := make([]int, 0, len(s))
	for doc := range s {
		if i, ok := fn2index[doc]; ok {
			out = append(out, i)
		}
	}
	sort.Ints(out)
	return out
}
