// Package query builds parameterized PostgreSQL statements over a projected
// table. Only projected columns can reach the generated SQL.
package query

import (
	"strings"
)

// ProjectionMap maps view field names to alias-qualified columns.
type ProjectionMap struct {
	from    string
	alias   string
	byName  map[string]string
	ordered []string
}

func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		from:   schema + "." + table + " " + alias,
		alias:  alias,
		byName: make(map[string]string),
	}
}

// Project maps view to column. Either name resolves the column afterwards,
// case-insensitively, so "UpdatedAt" and "updated_at" both work as sort keys.
func (p *ProjectionMap) Project(column, view string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.byName[strings.ToLower(view)] = qualified
	p.byName[strings.ToLower(column)] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

func (p *ProjectionMap) From() string {
	return p.from
}

// Column resolves a view or column name to its qualified column.
func (p *ProjectionMap) Column(name string) (string, bool) {
	col, ok := p.byName[strings.ToLower(name)]
	return col, ok
}

func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}
