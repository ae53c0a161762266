package advisor

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/registrar/pkg/handlers"
	"github.com/JaimeStill/registrar/pkg/routes"
)

// Handler provides the recommend endpoint.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "advisor"),
	}
}

// Routes returns the route group definition for the advisor endpoint.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/recommend",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Recommend},
		},
	}
}

// Recommend decodes a Request and responds with the workflow outcome.
// Failures use the categorized ErrorResponse body.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, fmt.Errorf("%w: %w", ErrMissingInput, err))
		return
	}

	resp, err := h.sys.Recommend(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	category, status := Categorize(err)

	if status >= http.StatusInternalServerError {
		h.logger.Error("recommend failed", "error", err, "category", category, "status", status)
	} else {
		h.logger.Warn("recommend failed", "error", err, "category", category, "status", status)
	}

	handlers.RespondJSON(w, status, ErrorResponse{
		Error:   category,
		Details: err.Error(),
	})
}
