// Package validation provides preflight checks: eval spec schema
// validation and model availability smoke tests.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/keiko-dev/keiko/schemas"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// evalSchema is the compiled JSON Schema for eval YAML files.
var evalSchema *jsonschema.Schema

func init() {
	evalSchema = mustCompileSchema(schemas.EvalSchemaJSON, "eval.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateEvalFile validates an eval YAML file against the schema.
// Returns human-readable validation errors; err is reserved for I/O and
// parse failures.
func ValidateEvalFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading eval file: %w", err)
	}
	return ValidateEvalBytes(data)
}

// ValidateEvalBytes validates raw eval YAML against the schema.
func ValidateEvalBytes(data []byte) ([]string, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing eval YAML: %w", err)
	}

	// Round-trip through JSON so the document uses JSON-native types the
	// schema validator understands.
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("normalizing eval document: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(jsonBytes, &normalized); err != nil {
		return nil, fmt.Errorf("normalizing eval document: %w", err)
	}

	if err := evalSchema.Validate(normalized); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return flattenValidationError(verr), nil
		}
		return []string{err.Error()}, nil
	}

	return nil, nil
}

// flattenValidationError collects leaf causes into readable strings.
func flattenValidationError(verr *jsonschema.ValidationError) []string {
	if len(verr.Causes) == 0 {
		return []string{verr.Error()}
	}
	var out []string
	for _, cause := range verr.Causes {
		out = append(out, flattenValidationError(cause)...)
	}
	return out
}
