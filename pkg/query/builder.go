package query

import (
	"reflect"
	"strconv"
	"strings"
)

// SortField names a projected field and its direction.
type SortField struct {
	Field      string
	Descending bool
}

// ParseSortFields reads "code,-updated_at" style lists. A leading "-" sorts
// descending. Blank entries are skipped.
func ParseSortFields(s string) []SortField {
	var fields []SortField
	for part := range strings.SplitSeq(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, desc := strings.CutPrefix(part, "-")
		fields = append(fields, SortField{Field: name, Descending: desc})
	}
	return fields
}

// condition renders a predicate, drawing placeholders from bind.
type condition func(bind func(any) string) string

// Builder accumulates predicates and ordering for one projection. Predicates
// on unprojected fields are dropped, as are nil or empty filter values.
type Builder struct {
	projection  *ProjectionMap
	conditions  []condition
	order       []SortField
	defaultSort []SortField
}

func NewBuilder(projection *ProjectionMap, defaultSort ...SortField) *Builder {
	return &Builder{projection: projection, defaultSort: defaultSort}
}

func (b *Builder) BuildCount() (string, []any) {
	where, args := b.where()
	return "SELECT COUNT(*) FROM " + b.projection.From() + where, args
}

// BuildPage selects one 1-based page.
func (b *Builder) BuildPage(page, pageSize int) (string, []any) {
	where, args := b.where()

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(b.projection.Columns())
	sb.WriteString(" FROM ")
	sb.WriteString(b.projection.From())
	sb.WriteString(where)
	sb.WriteString(b.orderBy())
	sb.WriteString(" LIMIT ")
	sb.WriteString(strconv.Itoa(pageSize))
	sb.WriteString(" OFFSET ")
	sb.WriteString(strconv.Itoa((page - 1) * pageSize))

	return sb.String(), args
}

// BuildSingle selects the row whose idField equals id, ignoring any
// accumulated predicates.
func (b *Builder) BuildSingle(idField string, id any) (string, []any) {
	col, _ := b.projection.Column(idField)
	return "SELECT " + b.projection.Columns() +
		" FROM " + b.projection.From() +
		" WHERE " + col + " = $1", []any{id}
}

// OrderByFields replaces the default sort.
func (b *Builder) OrderByFields(fields []SortField) *Builder {
	b.order = fields
	return b
}

// WhereContains matches a case-insensitive substring.
func (b *Builder) WhereContains(field string, value *string) *Builder {
	if value == nil || *value == "" {
		return b
	}
	return b.compare(field, "ILIKE", "%"+*value+"%")
}

func (b *Builder) WhereEquals(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.compare(field, "=", value)
}

func (b *Builder) WhereAtLeast(field string, value any) *Builder {
	if isNil(value) {
		return b
	}
	return b.compare(field, ">=", value)
}

// WhereSearch matches search as a substring of any of fields.
func (b *Builder) WhereSearch(search *string, fields ...string) *Builder {
	if search == nil || *search == "" {
		return b
	}

	var cols []string
	for _, f := range fields {
		if col, ok := b.projection.Column(f); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) == 0 {
		return b
	}

	pattern := "%" + *search + "%"
	b.conditions = append(b.conditions, func(bind func(any) string) string {
		clauses := make([]string, len(cols))
		for i, col := range cols {
			clauses[i] = col + " ILIKE " + bind(pattern)
		}
		return "(" + strings.Join(clauses, " OR ") + ")"
	})
	return b
}

func (b *Builder) compare(field, op string, value any) *Builder {
	col, ok := b.projection.Column(field)
	if !ok {
		return b
	}
	b.conditions = append(b.conditions, func(bind func(any) string) string {
		return col + " " + op + " " + bind(value)
	})
	return b
}

func (b *Builder) where() (string, []any) {
	if len(b.conditions) == 0 {
		return "", nil
	}

	var args []any
	bind := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	clauses := make([]string, len(b.conditions))
	for i, c := range b.conditions {
		clauses[i] = c(bind)
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (b *Builder) orderBy() string {
	render := func(fields []SortField) []string {
		var parts []string
		for _, f := range fields {
			col, ok := b.projection.Column(f.Field)
			if !ok {
				continue
			}
			dir := " ASC"
			if f.Descending {
				dir = " DESC"
			}
			parts = append(parts, col+dir)
		}
		return parts
	}

	parts := render(b.order)
	if len(parts) == 0 {
		parts = render(b.defaultSort)
	}
	if len(parts) == 0 {
		return ""
	}
	return " ORDER BY " + strings.Join(parts, ", ")
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return v.IsNil()
	}
	return false
}
