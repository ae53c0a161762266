package api

import (
	"net/http"

	"github.com/JaimeStill/registrar/pkg/openapi"
	"github.com/JaimeStill/registrar/pkg/routes"
)

// registerRoutes mounts the domain handlers and the OpenAPI document, and
// returns the registered patterns.
func registerRoutes(mux *http.ServeMux, domain *Domain, spec []byte) []string {
	groups := []routes.Group{
		domain.Advisor.Handler().Routes(),
		domain.Courses.Handler().Routes(),
		domain.Sessions.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
	}
	routes.Register(mux, groups...)

	const specPattern = "GET /openapi.json"
	mux.HandleFunc(specPattern, openapi.ServeSpec(spec))

	return append(routes.Patterns(groups...), specPattern)
}
