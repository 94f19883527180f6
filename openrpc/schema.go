package openrpc

import (
	"encoding/json"
	"fmt"
)

// Schema is a JSON Schema value: either the boolean schemas `true`/`false`,
// or a full schema object. Mirrors the schemars::schema::Schema sum type
// from the source this spec was distilled from — a tagged variant, not a
// type hierarchy.
type Schema struct {
	// Bool is non-nil when this schema is one of the boolean schemas.
	Bool *bool
	// Object is non-nil when this schema is a JSON object. Keyed by the raw
	// JSON Schema keyword names ("allOf", "properties", "$ref", ...) since
	// the checker only needs a handful of keywords and otherwise treats a
	// schema as an opaque document to bundle and hand to the compiler.
	Object map[string]any
}

// BoolSchema constructs a boolean schema.
func BoolSchema(b bool) Schema { return Schema{Bool: &b} }

// ObjectSchema constructs an object schema.
func ObjectSchema(fields map[string]any) Schema { return Schema{Object: fields} }

// IsBool reports whether this is a boolean schema.
func (s Schema) IsBool() bool { return s.Bool != nil }

// Ref returns the value of a top-level "$ref" keyword, if any.
func (s Schema) Ref() (string, bool) {
	if s.Object == nil {
		return "", false
	}
	ref, ok := s.Object["$ref"].(string)
	return ref, ok && ref != ""
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	var asBool bool
	if err := json.Unmarshal(data, &asBool); err == nil {
		*s = Schema{Bool: &asBool}
		return nil
	}

	var asObject map[string]any
	if err := json.Unmarshal(data, &asObject); err != nil {
		return fmt.Errorf("schema is neither a boolean nor an object: %w", err)
	}
	*s = Schema{Object: asObject}
	return nil
}

func (s Schema) MarshalJSON() ([]byte, error) {
	switch {
	case s.Bool != nil:
		return json.Marshal(*s.Bool)
	case s.Object != nil:
		return json.Marshal(s.Object)
	default:
		// The zero Schema marshals as the permissive `true` schema.
		return json.Marshal(true)
	}
}

// subSchemas returns every Schema directly nested inside a combinator
// keyword ("allOf", "anyOf", "oneOf", "not", "if", "then", "else").
func (s Schema) subSchemas() []Schema {
	if s.Object == nil {
		return nil
	}
	var out []Schema
	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		raw, ok := s.Object[key]
		if !ok {
			continue
		}
		list, ok := raw.([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			if sub, ok := decodeSchema(item); ok {
				out = append(out, sub)
			}
		}
	}
	for _, key := range []string{"not", "if", "then", "else"} {
		raw, ok := s.Object[key]
		if !ok {
			continue
		}
		if sub, ok := decodeSchema(raw); ok {
			out = append(out, sub)
		}
	}
	return out
}

// arraySchemas returns the Schemas nested under array keywords: "items"
// (which may be a single schema or a list), "additionalItems", "contains".
func (s Schema) arraySchemas() []Schema {
	if s.Object == nil {
		return nil
	}
	var out []Schema
	if raw, ok := s.Object["items"]; ok {
		switch v := raw.(type) {
		case []any:
			for _, item := range v {
				if sub, ok := decodeSchema(item); ok {
					out = append(out, sub)
				}
			}
		default:
			if sub, ok := decodeSchema(raw); ok {
				out = append(out, sub)
			}
		}
	}
	for _, key := range []string{"additionalItems", "contains"} {
		if raw, ok := s.Object[key]; ok {
			if sub, ok := decodeSchema(raw); ok {
				out = append(out, sub)
			}
		}
	}
	return out
}

// objectSchemas returns the Schemas nested under object keywords: every
// value of "properties" and "patternProperties", plus "additionalProperties"
// and "propertyNames".
func (s Schema) objectSchemas() []Schema {
	if s.Object == nil {
		return nil
	}
	var out []Schema
	for _, key := range []string{"properties", "patternProperties"} {
		raw, ok := s.Object[key]
		if !ok {
			continue
		}
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		for _, v := range m {
			if sub, ok := decodeSchema(v); ok {
				out = append(out, sub)
			}
		}
	}
	for _, key := range []string{"additionalProperties", "propertyNames"} {
		if raw, ok := s.Object[key]; ok {
			if sub, ok := decodeSchema(raw); ok {
				out = append(out, sub)
			}
		}
	}
	return out
}

// decodeSchema converts a value produced by encoding/json's generic decoder
// (bool, map[string]any, or anything else) into a Schema.
func decodeSchema(v any) (Schema, bool) {
	switch t := v.(type) {
	case bool:
		return Schema{Bool: &t}, true
	case map[string]any:
		return Schema{Object: t}, true
	default:
		return Schema{}, false
	}
}
