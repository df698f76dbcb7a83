package templates

import (
	"bytes"
	"encoding/json"
	"fmt"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sitekit/go-admin/templates"
)

// DescriptorSchema derives a JSON schema describing the data object shape a
// template produces. Required-field presence is not encoded here; the editor
// enforces it before writes so a half-filled draft still validates.
func DescriptorSchema(desc *Descriptor) map[string]any {
	return map[string]any{
		"type":                 "object",
		"properties":           fieldProperties(desc.Fields),
		"additionalProperties": false,
	}
}

func fieldProperties(fields []FieldDescriptor) map[string]any {
	properties := make(map[string]any, len(fields))
	for _, field := range fields {
		properties[field.Name] = fieldSchema(field)
	}
	return properties
}

func fieldSchema(field FieldDescriptor) map[string]any {
	switch field.Type {
	case templates.FieldText, templates.FieldTextarea, templates.FieldDate:
		return map[string]any{"type": "string"}
	case templates.FieldCheckbox:
		return map[string]any{"type": "boolean"}
	case templates.FieldImage:
		return imageSchema()
	case templates.FieldGallery:
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"url":     map[string]any{"type": "string"},
					"alt":     map[string]any{"type": "string"},
					"caption": map[string]any{"type": "string"},
				},
				"additionalProperties": false,
			},
		}
	case templates.FieldTags:
		return map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		}
	case templates.FieldRepeater:
		return map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"properties":           fieldProperties(field.Subfields),
				"additionalProperties": false,
			},
		}
	}
	// Unreachable for registered descriptors; Register rejects unknown types.
	return map[string]any{}
}

func imageSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"url":       map[string]any{"type": "string"},
			"public_id": map[string]any{"type": "string"},
			"alt":       map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
}

func compileDescriptorSchema(desc *Descriptor) (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(DescriptorSchema(desc))
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(encoded)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := compiler.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return compiled, nil
}

// ValidateDocument checks a data payload against a template's derived schema.
func (r *Registry) ValidateDocument(templateID string, data map[string]any) error {
	schema, err := r.Schema(templateID)
	if err != nil {
		return err
	}
	normalized, err := toJSONValue(data)
	if err != nil {
		return fmt.Errorf("templates: normalize payload: %w", err)
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("templates: document does not match %q schema: %w", templateID, err)
	}
	return nil
}

// toJSONValue round-trips a payload through encoding/json so typed values
// (Image structs, []string slices) validate as their wire representation.
func toJSONValue(data map[string]any) (any, error) {
	if data == nil {
		return map[string]any{}, nil
	}
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
