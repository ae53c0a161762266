package prompts

import (
	"net/url"
	"strconv"

	"github.com/JaimeStill/registrar/pkg/query"
	"github.com/JaimeStill/registrar/pkg/repository"
)

// promptColumns lists the selected columns in scan order, each paired with
// its view name and the Prompt field it fills.
var promptColumns = []struct {
	column string
	view   string
	field  func(*Prompt) any
}{
	{"id", "ID", func(p *Prompt) any { return &p.ID }},
	{"name", "Name", func(p *Prompt) any { return &p.Name }},
	{"stage", "Stage", func(p *Prompt) any { return &p.Stage }},
	{"instructions", "Instructions", func(p *Prompt) any { return &p.Instructions }},
	{"description", "Description", func(p *Prompt) any { return &p.Description }},
	{"active", "Active", func(p *Prompt) any { return &p.Active }},
}

var projection = func() *query.ProjectionMap {
	pm := query.NewProjectionMap("public", "prompts", "p")
	for _, c := range promptColumns {
		pm.Project(c.column, c.view)
	}
	return pm
}()

var defaultSort = query.SortField{Field: "Name"}

// Filters narrows prompt listings. A nil field matches every row.
type Filters struct {
	Stage  *Stage  `json:"stage,omitempty"`
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply matches stage and active exactly and name as a case-insensitive
// fragment.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Stage", f.Stage).
		WhereContains("Name", f.Name).
		WhereEquals("Active", f.Active)
}

// FiltersFromQuery reads stage, name and active. A stage outside the
// overridable set or an unparseable active flag leaves that filter unset.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if stage, err := ParseStage(values.Get("stage")); err == nil {
		f.Stage = &stage
	}

	if name := values.Get("name"); name != "" {
		f.Name = &name
	}

	if active, err := strconv.ParseBool(values.Get("active")); err == nil {
		f.Active = &active
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var p Prompt
	dest := make([]any, len(promptColumns))
	for i, c := range promptColumns {
		dest[i] = c.field(&p)
	}
	err := s.Scan(dest...)
	return p, err
}
