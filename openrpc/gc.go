package openrpc

import "github.com/team-telnyx/openrpc-proxy/openrpc/resolved"

// PruneSchemas removes every schema in doc.Schemas that is not reachable
// from a method's param or result schema, following "$ref" and the nested
// schema keywords (allOf/anyOf/oneOf/not/if/then/else, items/
// additionalItems/contains, properties/patternProperties/
// additionalProperties/propertyNames).
//
// This is mark-and-sweep, not reference counting: the alive set is checked
// for membership before recursing into a schema, so a reference cycle is
// visited at most once per schema.
//
// A "$ref" that doesn't resolve to a components/schemas entry is a
// BrokenReferenceError rather than something to sweep away quietly.
func PruneSchemas(doc *resolved.OpenRPC) error {
	alive := make(map[string]bool)
	for _, m := range doc.Methods {
		for _, p := range m.Params {
			if err := markSchema(p.Schema, doc.Schemas, alive); err != nil {
				return err
			}
		}
		if m.Result != nil {
			if err := markSchema(m.Result.Schema, doc.Schemas, alive); err != nil {
				return err
			}
		}
	}

	for key := range doc.Schemas {
		if !alive[key] {
			delete(doc.Schemas, key)
		}
	}
	return nil
}

func markSchema(s Schema, all map[string]Schema, alive map[string]bool) error {
	if ref, ok := s.Ref(); ok {
		key, ok := componentKey(ref, "schemas")
		if !ok {
			return &BrokenReferenceError{Reference: ref, Reason: "not a components/schemas reference"}
		}
		if alive[key] {
			return nil
		}
		target, ok := all[key]
		if !ok {
			return &BrokenReferenceError{Reference: ref, Reason: "no such schema"}
		}
		alive[key] = true
		return markSchema(target, all, alive)
	}

	for _, sub := range s.subSchemas() {
		if err := markSchema(sub, all, alive); err != nil {
			return err
		}
	}
	for _, sub := range s.arraySchemas() {
		if err := markSchema(sub, all, alive); err != nil {
			return err
		}
	}
	for _, sub := range s.objectSchemas() {
		if err := markSchema(sub, all, alive); err != nil {
			return err
		}
	}
	return nil
}
