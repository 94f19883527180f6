package checker

import (
	"encoding/json"
	"fmt"
)

// fakeCompiler is a minimal SchemaCompiler used in tests: it understands
// just enough of a schema's "type" keyword to drive the scenarios in the
// test files, without depending on a real JSON-Schema engine.
type fakeCompiler struct{}

func (fakeCompiler) Compile(schema json.RawMessage) (CompiledSchema, error) {
	var parsed map[string]any
	if err := json.Unmarshal(schema, &parsed); err != nil {
		// boolean schema
		var b bool
		if err2 := json.Unmarshal(schema, &b); err2 == nil {
			return fakeSchema{boolSchema: &b}, nil
		}
		return nil, fmt.Errorf("fakeCompiler: %w", err)
	}
	typ, _ := parsed["type"].(string)
	return fakeSchema{typ: typ}, nil
}

type fakeSchema struct {
	typ        string
	boolSchema *bool
}

func (s fakeSchema) Valid(instance any) bool {
	if s.boolSchema != nil {
		return *s.boolSchema
	}
	switch s.typ {
	case "number":
		_, ok := instance.(float64)
		return ok
	case "string":
		_, ok := instance.(string)
		return ok
	case "object":
		_, ok := instance.(map[string]any)
		return ok
	case "array":
		_, ok := instance.([]any)
		return ok
	default:
		return true
	}
}
