package openapi

const jsonMedia = "application/json"

func jsonContent(schema *Schema) map[string]*MediaType {
	return map[string]*MediaType{jsonMedia: {Schema: schema}}
}

func SchemaRef(name string) *Schema {
	return &Schema{Ref: "#/components/schemas/" + name}
}

func ResponseRef(name string) *Response {
	return &Response{Ref: "#/components/responses/" + name}
}

// ArrayOf wraps item in an array schema.
func ArrayOf(item *Schema) *Schema {
	return &Schema{Type: "array", Items: item}
}

// RequestBodyJSON declares a JSON body shaped by the named component schema.
func RequestBodyJSON(schema string, required bool) *RequestBody {
	return &RequestBody{Required: required, Content: jsonContent(SchemaRef(schema))}
}

// ResponseJSON declares a JSON response shaped by the named component schema.
func ResponseJSON(description, schema string) *Response {
	return &Response{Description: description, Content: jsonContent(SchemaRef(schema))}
}

// PathParam declares a required uuid path segment.
func PathParam(name, description string) *Parameter {
	return param(name, "path", description, true, &Schema{Type: "string", Format: "uuid"})
}

// IntPathParam declares a required int64 path segment.
func IntPathParam(name, description string) *Parameter {
	return param(name, "path", description, true, &Schema{Type: "integer", Format: "int64"})
}

func QueryParam(name, typ, description string, required bool) *Parameter {
	return param(name, "query", description, required, &Schema{Type: typ})
}

func param(name, in, description string, required bool, schema *Schema) *Parameter {
	return &Parameter{
		Name:        name,
		In:          in,
		Required:    required,
		Description: description,
		Schema:      schema,
	}
}
