package domain

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func pyDomain() *StaticDomain {
	return &StaticDomain{
		DomainName: "py",
		Entries: []ObjectEntry{
			{FullName: "pkg.mod.func", DispName: "pkg.mod.func", Type: "function", Docname: "api", Anchor: "pkg.mod.func", Priority: 1},
			{FullName: "pkg.Cls", DispName: "pkg.Cls", Type: "class", Docname: "api", Anchor: "class-pkg.Cls", Priority: 1},
		},
		TypeNames: map[string]string{"function": "Python function", "class": "Python class"},
	}
}

func TestSortedObjects(t *testing.T) {
	entries := SortedObjects(pyDomain())
	require.Len(t, entries, 2)
	assert.Equal(t, "pkg.Cls", entries[0].FullName)
	assert.Equal(t, "pkg.mod.func", entries[1].FullName)
}

func TestSortedDomains(t *testing.T) {
	ds := Sorted([]Domain{&StaticDomain{DomainName: "std"}, &StaticDomain{DomainName: "c"}, pyDomain()})
	names := []string{ds[0].Name(), ds[1].Name(), ds[2].Name()}
	assert.Equal(t, []string{"c", "py", "std"}, names)
}

func TestObjectsReturnsCopy(t *testing.T) {
	d := pyDomain()
	objs := d.Objects()
	objs[0].FullName = "changed"
	assert.Equal(t, "pkg.mod.func", d.Entries[0].FullName)

	name, ok := d.TypeDisplayName("class")
	assert.True(t, ok)
	assert.Equal(t, "Python class", name)
	_, ok = d.TypeDisplayName("data")
	assert.False(t, ok)
}

func TestSQLSourceRoundTrip(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	ctx := context.Background()
	src := NewSQLSource(db)
	require.NoError(t, src.EnsureSchema(ctx))
	require.NoError(t, src.EnsureSchema(ctx))

	std := &StaticDomain{
		DomainName: "std",
		Entries:    []ObjectEntry{{FullName: "--verbose", DispName: "--verbose", Type: "option", Docname: "cli", Anchor: "cmdoption-verbose", Priority: -1}},
	}
	require.NoError(t, src.Save(ctx, pyDomain(), std))
	// saving again replaces rather than duplicates
	require.NoError(t, src.Save(ctx, pyDomain()))

	domains, err := src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "py", domains[0].Name())
	assert.Equal(t, "std", domains[1].Name())

	py := SortedObjects(domains[0])
	assert.Equal(t, SortedObjects(pyDomain()), py)
	display, ok := domains[0].TypeDisplayName("function")
	assert.True(t, ok)
	assert.Equal(t, "Python function", display)

	assert.Equal(t, -1, domains[1].Objects()[0].Priority)
}
