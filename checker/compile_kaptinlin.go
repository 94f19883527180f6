package checker

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// kaptinlinCompiler adapts github.com/kaptinlin/jsonschema to SchemaCompiler.
type kaptinlinCompiler struct {
	compiler *jsonschema.Compiler
}

// NewKaptinlinCompiler returns a SchemaCompiler backed by
// github.com/kaptinlin/jsonschema, a 2020-12 draft JSON Schema engine that
// resolves same-document "$ref"s natively, which is exactly what the
// "schema bundling" compile step (see Build) relies on.
func NewKaptinlinCompiler() SchemaCompiler {
	return &kaptinlinCompiler{compiler: jsonschema.NewCompiler()}
}

func (c *kaptinlinCompiler) Compile(schema json.RawMessage) (CompiledSchema, error) {
	compiled, err := c.compiler.Compile(schema)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &kaptinlinSchema{schema: compiled}, nil
}

type kaptinlinSchema struct {
	schema *jsonschema.Schema
}

func (s *kaptinlinSchema) Valid(instance any) bool {
	return s.schema.Validate(instance).IsValid()
}
