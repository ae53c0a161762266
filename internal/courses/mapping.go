package courses

import (
	"cmp"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/JaimeStill/registrar/pkg/query"
)

var defaultSort = []query.SortField{{Field: "code"}}

// comparators keyed by lowercase sort field name; unknown fields are ignored.
var comparators = map[string]func(a, b Course) int{
	"id":          func(a, b Course) int { return cmp.Compare(a.ID, b.ID) },
	"class_id":    func(a, b Course) int { return cmp.Compare(a.ID, b.ID) },
	"code":        func(a, b Course) int { return cmp.Compare(CodeKey(a.Code), CodeKey(b.Code)) },
	"course_code": func(a, b Course) int { return cmp.Compare(CodeKey(a.Code), CodeKey(b.Code)) },
	"title":       func(a, b Course) int { return cmp.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) },
	"enrolled":    func(a, b Course) int { return cmp.Compare(a.Enrolled, b.Enrolled) },
	"capacity":    func(a, b Course) int { return cmp.Compare(a.MaxEnroll, b.MaxEnroll) },
	"max_enroll":  func(a, b Course) int { return cmp.Compare(a.MaxEnroll, b.MaxEnroll) },
	"seats": func(a, b Course) int {
		return cmp.Compare(a.MaxEnroll-a.Enrolled, b.MaxEnroll-b.Enrolled)
	},
}

// Filters contains optional filtering criteria for catalog queries.
// Nil fields are ignored. Code and Title use case-insensitive contains
// matching; Open keeps only courses with (or without) seats remaining.
type Filters struct {
	Code     *string   `json:"code,omitempty"`
	Title    *string   `json:"title,omitempty"`
	Workload *Workload `json:"workload,omitempty"`
	Open     *bool     `json:"open,omitempty"`
}

// Matches reports whether c satisfies every set filter.
func (f Filters) Matches(c Course) bool {
	if f.Code != nil && !strings.Contains(CodeKey(c.Code), CodeKey(*f.Code)) {
		return false
	}
	if f.Title != nil && !containsFold(c.Title, *f.Title) {
		return false
	}
	if f.Workload != nil && c.Workload != *f.Workload {
		return false
	}
	if f.Open != nil && (c.Enrolled < c.MaxEnroll) != *f.Open {
		return false
	}
	return true
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("code"); c != "" {
		f.Code = &c
	}

	if t := values.Get("title"); t != "" {
		f.Title = &t
	}

	if w, ok := ParseWorkload(values.Get("workload")); ok {
		f.Workload = &w
	}

	if o := values.Get("open"); o != "" {
		if v, err := strconv.ParseBool(o); err == nil {
			f.Open = &v
		}
	}

	return f
}

func matchesSearch(c Course, search *string) bool {
	if search == nil || *search == "" {
		return true
	}
	return containsFold(c.Code, *search) ||
		containsFold(c.Title, *search) ||
		containsFold(c.Description, *search)
}

func sortCourses(items []Course, fields []query.SortField) {
	if len(fields) == 0 {
		fields = defaultSort
	}

	slices.SortStableFunc(items, func(a, b Course) int {
		for _, f := range fields {
			compare, ok := comparators[strings.ToLower(f.Field)]
			if !ok {
				continue
			}
			c := compare(a, b)
			if f.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
