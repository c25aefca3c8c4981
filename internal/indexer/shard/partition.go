// Package shard assigns documents to the workers of a parallel build. A
// docname always lands on the same worker for a given worker count, so each
// worker's partial index owns a disjoint set of documents.
package shard

import (
	"github.com/cespare/xxhash/v2"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/doctree"
)

// For returns the worker index in [0, n) responsible for docname.
func For(docname string, n int) int {
	if n <= 1 {
		return 0
	}
	return int(xxhash.Sum64String(docname) % uint64(n))
}

// Partition splits docs into n groups by For, keeping the input order inside
// each group. Groups may be empty. A docname listed twice stays in one group.
func Partition(docs []*doctree.Document, n int) [][]*doctree.Document {
	if n < 1 {
		n = 1
	}
	parts := make([][]*doctree.Document, n)
	for _, d := range docs {
		i := For(d.Docname, n)
		parts[i] = append(parts[i], d)
	}
	return parts
}
