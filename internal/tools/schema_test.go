package tools

import (
	"encoding/json"
	"testing"
)

// schemaProperties marshals the generated schema for T and returns its
// properties and required list.
func schemaProperties[T any](t *testing.T) (map[string]any, []any) {
	t.Helper()
	data, err := json.MarshalIndent(GenerateSchema[T](), "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal schema: %v", err)
	}
	t.Logf("Generated Schema:\n%s", string(data))

	var result map[string]any
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("Failed to unmarshal schema: %v", err)
	}
	if result["type"] != "object" {
		t.Fatalf("Expected object schema, got %v", result["type"])
	}
	// an input without fields has no properties
	props, _ := result["properties"].(map[string]any)
	required, _ := result["required"].([]any)
	return props, required
}

func TestGenerateSchema_NullableOptional(t *testing.T) {
	props, required := schemaProperties[ConvertMarkdownInput](t)

	format, ok := props["content_format"].(map[string]any)
	if !ok {
		t.Fatal("content_format field not found")
	}

	// type must be "string" not ["string", "null"]
	typ, ok := format["type"]
	if !ok {
		t.Fatal("type not found in content_format field")
	}
	if typStr, ok := typ.(string); !ok || typStr != "string" {
		t.Errorf("Expected type \"string\", got %T: %v", typ, typ)
	}

	nullable, ok := format["nullable"].(bool)
	if !ok || !nullable {
		t.Errorf("Expected nullable to be true, got %v", format["nullable"])
	}

	for _, r := range required {
		if r == "content_format" {
			t.Error("content_format must not be required")
		}
	}
}

func TestGenerateSchema_ToolInputs(t *testing.T) {
	tests := []struct {
		name     string
		props    func(t *testing.T) (map[string]any, []any)
		required []string
	}{
		{"convert_document", schemaProperties[ConvertDocumentInput], []string{"document_id"}},
		{"convert_document_tree", schemaProperties[ConvertDocumentTreeInput], []string{"document"}},
		{"convert_markdown", schemaProperties[ConvertMarkdownInput], []string{"markdown"}},
		{"list_documents", schemaProperties[ListDocumentsInput], nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			props, required := tt.props(t)
			for _, want := range tt.required {
				prop, ok := props[want].(map[string]any)
				if !ok {
					t.Fatalf("property %s not found", want)
				}
				if prop["description"] == nil {
					t.Errorf("property %s has no description", want)
				}
				found := false
				for _, r := range required {
					if r == want {
						found = true
					}
				}
				if !found {
					t.Errorf("Expected %s to be required, got %v", want, required)
				}
			}
		})
	}
}
