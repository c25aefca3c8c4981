// Package domain supplies the cross-reference objects (API symbols, settings,
// options) that are surfaced to search as typed entries.
package domain

import "sort"

// ObjectEntry is one cross-reference target.
type ObjectEntry struct {
	FullName string
	DispName string
	Type     string
	Docname  string
	Anchor   string
	// Priority below zero hides the object from search.
	Priority int
}

// Less orders entries by full identity, field by field.
func (e ObjectEntry) Less(o ObjectEntry) bool {
	switch {
	case e.FullName != o.FullName:
		return e.FullName < o.FullName
	case e.DispName != o.DispName:
		return e.DispName < o.DispName
	case e.Type != o.Type:
		return e.Type < o.Type
	case e.Docname != o.Docname:
		return e.Docname < o.Docname
	case e.Anchor != o.Anchor:
		return e.Anchor < o.Anchor
	default:
		return e.Priority < o.Priority
	}
}

// Domain is a read-only namespace of cross-reference objects.
type Domain interface {
	Name() string
	Objects() []ObjectEntry
	// TypeDisplayName returns the localized name of an object type, or false
	// when the domain does not declare the type.
	TypeDisplayName(objType string) (string, bool)
}

// StaticDomain is an in-memory Domain.
type StaticDomain struct {
	DomainName string
	Entries    []ObjectEntry
	// TypeNames maps object types to display names.
	TypeNames map[string]string
}

func (d *StaticDomain) Name() string { return d.DomainName }

func (d *StaticDomain) Objects() []ObjectEntry {
	out := make([]ObjectEntry, len(d.Entries))
	copy(out, d.Entries)
	return out
}

func (d *StaticDomain) TypeDisplayName(objType string) (string, bool) {
	name, ok := d.TypeNames[objType]
	return name, ok
}

// Sorted returns domains ordered by name.
func Sorted(domains []Domain) []Domain {
	out := make([]Domain, len(domains))
	copy(out, domains)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// SortedObjects returns d's entries ordered by identity.
func SortedObjects(d Domain) []ObjectEntry {
	entries := d.Objects()
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Less(entries[j]) })
	return entries
}
