// Package schemas embeds the JSON Schemas used to validate configuration
// files before they are loaded.
package schemas

import _ "embed"

// EvalSchemaJSON is the JSON Schema for eval YAML files.
//
//go:embed eval.schema.json
var EvalSchemaJSON string
