package checker

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/team-telnyx/openrpc-proxy/openrpc"
	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

// Build compiles every method in doc into a Checker, using compiler to turn
// each parameter and result schema into a CompiledSchema. Methods are
// processed in declaration order so the first error (duplicate method,
// duplicate parameter, out-of-order required parameter, schema compile
// failure) reported matches the order a reader would expect.
func Build(doc *resolved.OpenRPC, compiler SchemaCompiler) (*Checker, error) {
	methods := make(map[string]*CompiledMethod, len(doc.Methods))

	for _, m := range doc.Methods {
		if _, exists := methods[m.Name]; exists {
			return nil, &DuplicateMethodError{Method: m.Name}
		}

		structure := paramStructureOf(m.ParamStructure)
		params := orderedmap.New[string, CompiledParam]()
		seenOptional := false

		for i, p := range m.Params {
			required := p.Required
			if required && seenOptional && structure != ParamStructureByName {
				return nil, &OptionalBeforeRequiredError{Method: m.Name, Index: i}
			}
			if !required {
				seenOptional = true
			}
			if _, exists := params.Get(p.Name); exists && structure != ParamStructureByPosition {
				return nil, &DuplicateParamError{Method: m.Name, Param: p.Name}
			}

			compiled, err := compileSchema(p.Schema, doc.Schemas, compiler)
			if err != nil {
				return nil, &SchemaCompileError{Method: m.Name, Param: p.Name, Err: err}
			}
			params.Set(p.Name, CompiledParam{
				Name:       p.Name,
				Required:   required,
				Deprecated: p.Deprecated,
				Schema:     compiled,
			})
		}

		var result CompiledSchema
		if m.Result != nil {
			compiled, err := compileSchema(m.Result.Schema, doc.Schemas, compiler)
			if err != nil {
				return nil, &SchemaCompileError{Method: m.Name, Err: err}
			}
			result = compiled
		}

		methods[m.Name] = &CompiledMethod{
			Name:           m.Name,
			ParamStructure: structure,
			Deprecated:     m.Deprecated,
			Params:         params,
			Result:         result,
		}
	}

	return &Checker{methods: methods}, nil
}

func paramStructureOf(p openrpc.ParamStructure) ParamStructure {
	switch p {
	case openrpc.ParamStructureByName:
		return ParamStructureByName
	case openrpc.ParamStructureByPosition:
		return ParamStructureByPosition
	default:
		return ParamStructureEither
	}
}

// compileSchema implements "Schema bundling": a boolean schema compiles
// as-is, an object schema is wrapped with a sibling "components" field so
// that a "$ref": "#/components/schemas/X" keyword resolves as a
// same-document JSON Pointer against schemas.
func compileSchema(s openrpc.Schema, schemas map[string]openrpc.Schema, compiler SchemaCompiler) (CompiledSchema, error) {
	if s.IsBool() {
		raw, err := json.Marshal(*s.Bool)
		if err != nil {
			return nil, fmt.Errorf("marshaling boolean schema: %w", err)
		}
		return compiler.Compile(raw)
	}

	bundle := make(map[string]any, len(s.Object)+1)
	for k, v := range s.Object {
		bundle[k] = v
	}
	bundle["components"] = map[string]any{"schemas": schemas}

	raw, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("marshaling bundled schema: %w", err)
	}
	return compiler.Compile(raw)
}
