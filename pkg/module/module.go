// Package module mounts self-contained HTTP modules under single-segment
// path prefixes, each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/JaimeStill/registrar/pkg/middleware"
)

// Module serves an inner router below a prefix such as "/api". The inner
// router sees paths with the prefix removed.
type Module struct {
	prefix string
	router http.Handler
	stack  middleware.System

	once    sync.Once
	handler http.Handler
}

// New panics when prefix is not a single segment with a leading slash.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix: prefix,
		router: router,
		stack:  middleware.New(),
	}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The stack is frozen the first time the module
// handles a request.
func (m *Module) Use(mw ...func(http.Handler) http.Handler) {
	for _, fn := range mw {
		m.stack.Use(fn)
	}
}

// Handler returns the inner router wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	m.once.Do(func() {
		m.handler = m.stack.Apply(m.router)
	})
	return m.handler
}

// Serve rewrites the request path relative to the prefix and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, stripPrefix(req, m.prefix))
}

func stripPrefix(req *http.Request, prefix string) *http.Request {
	rest := strings.TrimPrefix(req.URL.Path, prefix)
	if rest == "" {
		rest = "/"
	}

	u := *req.URL
	u.Path = rest
	u.RawPath = ""

	r := req.Clone(req.Context())
	r.URL = &u
	return r
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case strings.Contains(prefix[1:], "/"):
		return fmt.Errorf("module prefix must be a single path segment: %s", prefix)
	}
	return nil
}
