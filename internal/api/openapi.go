package api

import (
	"github.com/JaimeStill/registrar/internal/config"
	"github.com/JaimeStill/registrar/pkg/openapi"
)

// NewSpec describes the API module's endpoints.
func NewSpec(cfg *config.Config) *openapi.Spec {
	spec := openapi.NewSpec(cfg.API.OpenAPI, cfg.Version, cfg.API.BasePath)

	spec.Components.AddSchemas(schemas())
	spec.Components.AddResponses(map[string]*openapi.Response{
		"RecommendError": {
			Description: "Categorized recommend failure",
			Content: map[string]*openapi.MediaType{
				"application/json": {Schema: openapi.SchemaRef("RecommendError")},
			},
		},
	})

	spec.Paths["/recommend"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:     "Plan or revise a four-course schedule",
			Description: "Classifies the message, then builds a new plan, revises the session's plan, or answers directly.",
			Tags:        []string{"advisor"},
			RequestBody: openapi.RequestBodyJSON("RecommendRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Recommendations or a general response", "RecommendResponse"),
				400: openapi.ResponseRef("RecommendError"),
				404: openapi.ResponseRef("RecommendError"),
				422: openapi.ResponseRef("RecommendError"),
				502: openapi.ResponseRef("RecommendError"),
				503: openapi.ResponseRef("RecommendError"),
			},
		},
	}

	spec.Paths["/courses"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List catalog courses",
			Tags:    []string{"courses"},
			Parameters: append(pageParams(),
				openapi.QueryParam("code", "string", "Course code, separators and aliases ignored", false),
				openapi.QueryParam("title", "string", "Title contains", false),
				openapi.QueryParam("workload", "string", "Workload hint: high, medium, low", false),
				openapi.QueryParam("open", "boolean", "Only courses with open seats", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of courses", "CoursePage"),
				503: openapi.ResponseRef("Unavailable"),
			},
		},
	}

	spec.Paths["/courses/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a course by class id",
			Tags:       []string{"courses"},
			Parameters: []*openapi.Parameter{openapi.IntPathParam("id", "Course ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Course", "Course"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/sessions"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary: "List advisor sessions",
			Tags:    []string{"sessions"},
			Parameters: append(pageParams(),
				openapi.QueryParam("request", "string", "Request text contains", false),
				openapi.QueryParam("since", "string", "Updated at or after (RFC 3339)", false),
				openapi.QueryParam("min_revisions", "integer", "Minimum revision count", false),
			),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Page of sessions", "SessionPage"),
			},
		},
	}

	spec.Paths["/sessions/{id}"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "Find a session",
			Tags:       []string{"sessions"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session ID")},
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Session", "Session"),
				400: openapi.ResponseRef("BadRequest"),
				404: openapi.ResponseRef("NotFound"),
			},
		},
		Delete: &openapi.Operation{
			Summary:    "Delete a session",
			Tags:       []string{"sessions"},
			Parameters: []*openapi.Parameter{openapi.PathParam("id", "Session ID")},
			Responses: map[int]*openapi.Response{
				204: {Description: "Deleted"},
				404: openapi.ResponseRef("NotFound"),
			},
		},
	}

	spec.Paths["/prompts"] = &openapi.PathItem{
		Get: &openapi.Operation{
			Summary:    "List stage prompt overrides",
			Tags:       []string{"prompts"},
			Parameters: pageParams(),
			Responses: map[int]*openapi.Response{
				200: {Description: "Page of prompts"},
			},
		},
		Post: &openapi.Operation{
			Summary: "Create a stage prompt override",
			Tags:    []string{"prompts"},
			Responses: map[int]*openapi.Response{
				201: {Description: "Created"},
				400: openapi.ResponseRef("BadRequest"),
				409: openapi.ResponseRef("Conflict"),
			},
		},
	}

	return spec
}

func pageParams() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
		openapi.QueryParam("page_size", "integer", "Results per page", false),
		openapi.QueryParam("search", "string", "Search query", false),
		openapi.QueryParam("sort", "string", "Comma-separated sort fields, - prefix for descending", false),
	}
}

func schemas() map[string]*openapi.Schema {
	str := &openapi.Schema{Type: "string"}
	strList := openapi.ArrayOf(str)

	recommendation := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"course_id":             {Type: "integer"},
			"course_code":           str,
			"title":                 str,
			"reason":                str,
			"average_grade":         str,
			"workload":              {Type: "string", Enum: []any{"high", "medium", "low"}},
			"enrollment_difficulty": {Type: "string", Enum: []any{"easy", "medium", "hard"}},
			"class_times":           strList,
			"comments":              str,
			"alignment_score":       {Type: "number", Description: "0-10, one decimal"},
		},
	}

	course := &openapi.Schema{
		Type: "object",
		Properties: map[string]*openapi.Schema{
			"class_id":    {Type: "integer"},
			"course_code": str,
			"title":       str,
			"description": str,
			"grade":       str,
			"class_times": strList,
			"enrolled":    {Type: "integer"},
			"max_enroll":  {Type: "integer"},
			"workload":    str,
		},
	}

	page := func(item string) *openapi.Schema {
		return &openapi.Schema{
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":        openapi.ArrayOf(openapi.SchemaRef(item)),
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		}
	}

	return map[string]*openapi.Schema{
		"RecommendRequest": {
			Type:     "object",
			Required: []string{"message"},
			Properties: map[string]*openapi.Schema{
				"session_id": {Type: "string", Format: "uuid", Description: "Omit to start a new session"},
				"message":    str,
			},
		},
		"RecommendResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"type":            {Type: "string", Enum: []any{"recommendations", "general_response"}},
				"session_id":      {Type: "string", Format: "uuid"},
				"category":        {Type: "string", Enum: []any{"new-plan", "follow-up", "general-query"}},
				"recommendations": openapi.ArrayOf(openapi.SchemaRef("Recommendation")),
				"revision":        {Type: "object"},
				"message":         str,
			},
		},
		"RecommendError": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error": {Type: "string", Enum: []any{
					"MissingInput", "CatalogUnavailable", "DownstreamParseError", "GenerationFailed",
					"UnrecognizedCategory", "NoPriorSession", "AmbiguousRevisionTarget",
					"InsufficientCandidates", "ProcessingError",
				}},
				"details": str,
			},
		},
		"Recommendation": recommendation,
		"Course":         course,
		"CoursePage":     page("Course"),
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string", Format: "uuid"},
				"request":         str,
				"matched":         openapi.ArrayOf(&openapi.Schema{Type: "object"}),
				"recommendations": openapi.ArrayOf(openapi.SchemaRef("Recommendation")),
				"revisions":       {Type: "integer"},
				"created_at":      {Type: "string", Format: "date-time"},
				"updated_at":      {Type: "string", Format: "date-time"},
			},
		},
		"SessionPage": page("Session"),
	}
}
