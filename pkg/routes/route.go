package routes

import "net/http"

// Route binds a method and a path pattern, relative to its Group, to a
// handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

func (r Route) under(prefix string) string {
	return r.Method + " " + prefix + r.Pattern
}
