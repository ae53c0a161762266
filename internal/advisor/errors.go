package advisor

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/registrar/internal/courses"
	"github.com/JaimeStill/registrar/internal/workflow"
)

// ErrMissingInput indicates an empty message or an undecodable request body.
var ErrMissingInput = errors.New("message is required")

// Error categories reported in ErrorResponse.Error.
const (
	CategoryMissingInput            = "MissingInput"
	CategoryCatalogUnavailable      = "CatalogUnavailable"
	CategoryDownstreamParse         = "DownstreamParseError"
	CategoryGenerationFailed        = "GenerationFailed"
	CategoryUnrecognizedCategory    = "UnrecognizedCategory"
	CategoryNoPriorSession          = "NoPriorSession"
	CategoryAmbiguousRevisionTarget = "AmbiguousRevisionTarget"
	CategoryInsufficientCandidates  = "InsufficientCandidates"
	CategoryProcessing              = "ProcessingError"
)

var categories = []struct {
	err      error
	category string
	status   int
}{
	{ErrMissingInput, CategoryMissingInput, http.StatusBadRequest},
	{courses.ErrCatalogUnavailable, CategoryCatalogUnavailable, http.StatusServiceUnavailable},
	{workflow.ErrDownstreamParse, CategoryDownstreamParse, http.StatusBadGateway},
	{workflow.ErrGenerationFailed, CategoryGenerationFailed, http.StatusBadGateway},
	{workflow.ErrUnrecognizedCategory, CategoryUnrecognizedCategory, http.StatusUnprocessableEntity},
	{workflow.ErrNoPriorSession, CategoryNoPriorSession, http.StatusNotFound},
	{workflow.ErrAmbiguousRevisionTarget, CategoryAmbiguousRevisionTarget, http.StatusUnprocessableEntity},
	{workflow.ErrInsufficientCandidates, CategoryInsufficientCandidates, http.StatusUnprocessableEntity},
}

// Categorize returns the reported category and HTTP status for err.
// Errors outside the known set are processing errors.
func Categorize(err error) (string, int) {
	for _, c := range categories {
		if errors.Is(err, c.err) {
			return c.category, c.status
		}
	}
	return CategoryProcessing, http.StatusInternalServerError
}

// MapHTTPStatus maps advisor errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	_, status := Categorize(err)
	return status
}
