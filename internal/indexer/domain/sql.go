package domain

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/Adithya-Monish-Kumar-K/searchindex/pkg/postgres"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS xref_objects (
	domain    TEXT NOT NULL,
	full_name TEXT NOT NULL,
	disp_name TEXT NOT NULL,
	obj_type  TEXT NOT NULL,
	docname   TEXT NOT NULL,
	anchor    TEXT NOT NULL,
	priority  INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS xref_types (
	domain       TEXT NOT NULL,
	obj_type     TEXT NOT NULL,
	display_name TEXT NOT NULL,
	PRIMARY KEY (domain, obj_type)
)`}

// SQLSource reads and writes domains in a relational registry. It works with
// any database/sql driver using $n placeholders (lib/pq, modernc sqlite).
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

// EnsureSchema creates the registry tables when missing.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating xref schema: %w", err)
		}
	}
	return nil
}

// Save replaces the stored contents of each given domain.
func (s *SQLSource) Save(ctx context.Context, domains ...*StaticDomain) error {
	return postgres.InTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, d := range domains {
			if _, err := tx.ExecContext(ctx, `DELETE FROM xref_objects WHERE domain = $1`, d.DomainName); err != nil {
				return fmt.Errorf("clearing objects of %s: %w", d.DomainName, err)
			}
			if _, err := tx.ExecContext(ctx, `DELETE FROM xref_types WHERE domain = $1`, d.DomainName); err != nil {
				return fmt.Errorf("clearing types of %s: %w", d.DomainName, err)
			}
			for _, e := range d.Entries {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO xref_objects (domain, full_name, disp_name, obj_type, docname, anchor, priority)
					 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
					d.DomainName, e.FullName, e.DispName, e.Type, e.Docname, e.Anchor, e.Priority)
				if err != nil {
					return fmt.Errorf("inserting %s object %s: %w", d.DomainName, e.FullName, err)
				}
			}
			for objType, display := range d.TypeNames {
				_, err := tx.ExecContext(ctx,
					`INSERT INTO xref_types (domain, obj_type, display_name) VALUES ($1, $2, $3)`,
					d.DomainName, objType, display)
				if err != nil {
					return fmt.Errorf("inserting %s type %s: %w", d.DomainName, objType, err)
				}
			}
		}
		return nil
	})
}

// Load reads every stored domain, ordered by name.
func (s *SQLSource) Load(ctx context.Context) ([]Domain, error) {
	byName := make(map[string]*StaticDomain)
	get := func(name string) *StaticDomain {
		d, ok := byName[name]
		if !ok {
			d = &StaticDomain{DomainName: name, TypeNames: make(map[string]string)}
			byName[name] = d
		}
		return d
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT domain, full_name, disp_name, obj_type, docname, anchor, priority FROM xref_objects`)
	if err != nil {
		return nil, fmt.Errorf("querying xref objects: %w", err)
	}
	for rows.Next() {
		var name string
		var e ObjectEntry
		if err := rows.Scan(&name, &e.FullName, &e.DispName, &e.Type, &e.Docname, &e.Anchor, &e.Priority); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning xref object: %w", err)
		}
		d := get(name)
		d.Entries = append(d.Entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating xref objects: %w", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT domain, obj_type, display_name FROM xref_types`)
	if err != nil {
		return nil, fmt.Errorf("querying xref types: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var name, objType, display string
		if err := rows.Scan(&name, &objType, &display); err != nil {
			return nil, fmt.Errorf("scanning xref type: %w", err)
		}
		get(name).TypeNames[objType] = display
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating xref types: %w", err)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]Domain, 0, len(names))
	for _, name := range names {
		out = append(out, byName[name])
	}
	return out, nil
}
