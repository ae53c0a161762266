// Package routes declares HTTP routes as nested prefix groups and registers
// them on a standard ServeMux.
package routes

import "net/http"

type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds every route in groups to mux. Conflicting patterns panic,
// as they do with ServeMux.HandleFunc.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		g.walk("", func(pattern string, h http.HandlerFunc) {
			mux.HandleFunc(pattern, h)
		})
	}
}

// Patterns returns the ServeMux patterns groups expand to, parents before
// children.
func Patterns(groups ...Group) []string {
	var out []string
	for _, g := range groups {
		g.walk("", func(pattern string, _ http.HandlerFunc) {
			out = append(out, pattern)
		})
	}
	return out
}

func (g Group) walk(parent string, visit func(string, http.HandlerFunc)) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		visit(r.under(prefix), r.Handler)
	}
	for _, child := range g.Children {
		child.walk(prefix, visit)
	}
}
