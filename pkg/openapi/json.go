package openapi

import "encoding/json"

// MarshalJSON renders the spec as indented JSON, ready for ServeSpec.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}
