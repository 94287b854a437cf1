package tools

import (
	"reflect"
	"slices"

	"github.com/google/jsonschema-go/jsonschema"
)

// GenerateSchema generates the input schema for a tool input type T.
// Optional pointer fields are rendered as a single type with
// "nullable": true instead of a ["type", "null"] array, which some clients
// (notably the Gemini API) reject.
func GenerateSchema[T any]() *jsonschema.Schema {
	schema, err := jsonschema.ForType(reflect.TypeFor[T](), &jsonschema.ForOptions{})
	if err != nil {
		// tool inputs are static types
		panic(err)
	}
	fixSchema(schema)
	return schema
}

// fixSchema rewrites nullable type arrays in s and all of its subschemas.
func fixSchema(s *jsonschema.Schema) {
	if s == nil {
		return
	}

	if slices.Contains(s.Types, "null") {
		others := slices.DeleteFunc(slices.Clone(s.Types), func(t string) bool { return t == "null" })
		if len(others) == 1 {
			s.Type = others[0]
			s.Types = nil
			if s.Extra == nil {
				s.Extra = make(map[string]any)
			}
			s.Extra["nullable"] = true
		}
	}

	for _, sub := range subschemas(s) {
		fixSchema(sub)
	}
}

// subschemas returns the direct child schemas of s.
func subschemas(s *jsonschema.Schema) []*jsonschema.Schema {
	var out []*jsonschema.Schema
	for _, p := range s.Properties {
		out = append(out, p)
	}
	for _, d := range s.Definitions {
		out = append(out, d)
	}
	for _, d := range s.Defs {
		out = append(out, d)
	}
	out = append(out, s.ItemsArray...)
	out = append(out, s.OneOf...)
	out = append(out, s.AnyOf...)
	out = append(out, s.AllOf...)
	out = append(out, s.Items, s.AdditionalProperties, s.Not, s.If, s.Then, s.Else)
	return out
}
