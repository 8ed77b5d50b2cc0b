package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// documentSchema constrains catalog.yaml: a positive version and a map of
// "<group>.<name>" keys to non-empty strings.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["version", "templates"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "integer", "minimum": 1},
    "templates": {
      "type": "object",
      "minProperties": 1,
      "additionalProperties": false,
      "patternProperties": {
        "^[a-z_]+\\.[a-z_-]+$": {"type": "string", "minLength": 1}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(documentSchema)

// validateSchema returns one entry per schema violation. The error is only
// set when validation itself could not run.
func validateSchema(raw map[string]any) ([]string, error) {
	if raw == nil {
		return []string{"(root): document is empty"}, nil
	}
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}
	problems := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		problems[i] = desc.String()
	}
	return problems, nil
}
