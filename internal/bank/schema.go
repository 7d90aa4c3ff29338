package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchemaDefinition is the JSON Schema every bank document must satisfy
// before decoding. Variant-specific requirements are expressed as
// conditionals on the type tag.
var bankSchemaDefinition = map[string]any{
	"type":     "object",
	"required": []any{"id", "name", "version", "questions"},
	"properties": map[string]any{
		"id":          map[string]any{"type": "string", "minLength": 1},
		"name":        map[string]any{"type": "string", "minLength": 1},
		"version":     map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"questions": map[string]any{
			"type":  "array",
			"items": questionSchemaDefinition,
		},
	},
}

var questionSchemaDefinition = map[string]any{
	"type":     "object",
	"required": []any{"id", "type", "text"},
	"properties": map[string]any{
		"id":   map[string]any{"type": "string", "minLength": 1},
		"type": map[string]any{"enum": []any{"multiple_choice_single", "multiple_choice_multi", "true_false", "fill_in_blank", "short_answer"}},
		"text": map[string]any{"type": "string", "minLength": 1},
		"explanation": map[string]any{
			"type": "string",
		},
		"meta": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"difficulty": map[string]any{"type": "integer", "minimum": 1, "maximum": 5},
				"category":   map[string]any{"type": "string"},
			},
		},
		"choices": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"correct_indices": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "integer", "minimum": 0},
		},
		"answer": map[string]any{"type": "boolean"},
		"acceptable_answers": map[string]any{
			"type": "array",
			"items": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string", "minLength": 1},
					map[string]any{
						"type":     "object",
						"required": []any{"text"},
						"properties": map[string]any{
							"text":           map[string]any{"type": "string", "minLength": 1},
							"case_sensitive": map[string]any{"type": "boolean"},
							"normalize":      map[string]any{"type": "boolean"},
							"exact_match":    map[string]any{"type": "boolean"},
							"partial_credit": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
							"feedback":       map[string]any{"type": "string"},
						},
					},
				},
			},
		},
		"reference_answer": map[string]any{"type": "string"},
	},
	"allOf": []any{
		map[string]any{
			"if": map[string]any{
				"properties": map[string]any{"type": map[string]any{"enum": []any{"multiple_choice_single", "multiple_choice_multi"}}},
			},
			"then": map[string]any{"required": []any{"choices", "correct_indices"}},
		},
		map[string]any{
			"if": map[string]any{
				"properties": map[string]any{"type": map[string]any{"const": "true_false"}},
			},
			"then": map[string]any{"required": []any{"answer"}},
		},
		map[string]any{
			"if": map[string]any{
				"properties": map[string]any{"type": map[string]any{"const": "fill_in_blank"}},
			},
			"then": map[string]any{"required": []any{"acceptable_answers"}},
		},
	},
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// bankSchema compiles the bank schema once and caches it.
func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler expects a parsed JSON value; round-trip the map
		// to strip Go-specific types.
		raw, err := json.Marshal(bankSchemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("marshal bank schema: %w", err)
			return
		}
		var parsed any
		if err := json.Unmarshal(raw, &parsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://question-bank.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}

// ValidateDocument checks raw bank JSON against the bank schema.
func ValidateDocument(data []byte) error {
	schema, err := bankSchema()
	if err != nil {
		return err
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
