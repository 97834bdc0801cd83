package util

import (
	"github.com/google/generative-ai-go/genai"
)

// SchemaDocument renders a genai schema as a JSON Schema document so the same
// shape that was requested from the model can be validated locally.
// Objects get additionalProperties left open; required lists are copied as is.
func SchemaDocument(s *genai.Schema) map[string]any {
	m := schemaNode(s)
	ensureSchemaMeta(m)
	return m
}

func schemaNode(s *genai.Schema) map[string]any {
	n := map[string]any{}
	if s == nil {
		return n
	}
	if t := jsonType(s.Type); t != "" {
		if s.Nullable {
			n["type"] = []any{t, "null"}
		} else {
			n["type"] = t
		}
	}
	if s.Description != "" {
		n["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		enum := make([]any, 0, len(s.Enum))
		for _, v := range s.Enum {
			enum = append(enum, v)
		}
		n["enum"] = enum
	}
	if s.Items != nil {
		n["items"] = schemaNode(s.Items)
	}
	if len(s.Properties) > 0 {
		props := make(map[string]any, len(s.Properties))
		for k, v := range s.Properties {
			props[k] = schemaNode(v)
		}
		n["properties"] = props
	}
	if len(s.Required) > 0 {
		req := make([]any, 0, len(s.Required))
		for _, k := range s.Required {
			req = append(req, k)
		}
		n["required"] = req
	}
	return n
}

func jsonType(t genai.Type) string {
	switch t {
	case genai.TypeString:
		return "string"
	case genai.TypeNumber:
		return "number"
	case genai.TypeInteger:
		return "integer"
	case genai.TypeBoolean:
		return "boolean"
	case genai.TypeArray:
		return "array"
	case genai.TypeObject:
		return "object"
	default:
		return ""
	}
}

// Some validators expect $schema to be present.
func ensureSchemaMeta(m map[string]any) {
	if _, ok := m["$schema"]; !ok {
		m["$schema"] = "http://json-schema.org/draft-07/schema#"
	}
}
