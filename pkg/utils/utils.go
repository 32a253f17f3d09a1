// Package utils holds small helpers shared by the commands and config loaders.
package utils

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// SchemaOption adjusts the JSON schema reflector.
type SchemaOption func(*jsonschema.Reflector)

// Inline expands nested structs in place instead of emitting $defs references.
func Inline() SchemaOption {
	return func(r *jsonschema.Reflector) {
		r.DoNotReference = true
	}
}

// AllowAdditionalProperties accepts keys the struct does not declare.
func AllowAdditionalProperties() SchemaOption {
	return func(r *jsonschema.Reflector) {
		r.AllowAdditionalProperties = true
	}
}

// GetSchemaFromConfig reflects v into a JSON schema document.
func GetSchemaFromConfig(v any, opts ...SchemaOption) (string, error) {
	r := &jsonschema.Reflector{}
	for _, opt := range opts {
		opt(r)
	}

	jsonSchemaBytes, err := json.Marshal(r.Reflect(v))
	if err != nil {
		return "", err
	}

	return string(jsonSchemaBytes), nil
}
