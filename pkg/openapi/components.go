package openapi

import "maps"

var errorBody = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"error": {Type: "string", Description: "Error message"},
	},
	Required: []string{"error"},
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content:     jsonContent(errorBody),
	}
}

// NewComponents returns the shared page-request schema and the standard
// error responses: BadRequest, NotFound, Conflict and Unavailable.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Schema{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
					"search":    {Type: "string", Description: "Search query"},
					"sort":      {Type: "string", Description: "Comma-separated sort fields, - prefix for descending", Example: "code,-enrolled"},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":  errorResponse("Invalid request"),
			"NotFound":    errorResponse("Resource not found"),
			"Conflict":    errorResponse("Resource conflict"),
			"Unavailable": errorResponse("A backing source is unavailable"),
		},
	}
}

func (c *Components) AddSchemas(schemas map[string]*Schema) {
	maps.Copy(c.Schemas, schemas)
}

func (c *Components) AddResponses(responses map[string]*Response) {
	maps.Copy(c.Responses, responses)
}
