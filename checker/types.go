// Package checker validates observed JSON-RPC traffic against a compiled
// OpenRPC document, producing advisory Annotation values. It never alters
// the bytes the proxy forwards.
package checker

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Annotation is a single non-conformance finding. It is a tagged variant,
// not a class hierarchy: exactly one Kind is meaningful per value, and the
// accompanying fields vary with it.
type Annotation struct {
	Kind  AnnotationKind
	Param string // set for MissingRequiredParam, DeprecatedParam, InvalidParam
}

// AnnotationKind enumerates every finding the checker can emit.
type AnnotationKind int

const (
	IncorrectParamStructure AnnotationKind = iota
	MissingRequiredParam
	DeprecatedParam
	InvalidParam
	InvalidResult
	ExcessParam
	BadNotification
	DeprecatedMethod
)

func (k AnnotationKind) String() string {
	switch k {
	case IncorrectParamStructure:
		return "IncorrectParamStructure"
	case MissingRequiredParam:
		return "MissingRequiredParam"
	case DeprecatedParam:
		return "DeprecatedParam"
	case InvalidParam:
		return "InvalidParam"
	case InvalidResult:
		return "InvalidResult"
	case ExcessParam:
		return "ExcessParam"
	case BadNotification:
		return "BadNotification"
	case DeprecatedMethod:
		return "DeprecatedMethod"
	default:
		return "Unknown"
	}
}

// SchemaCompiler is the injected capability that turns a bundled JSON
// Schema document into something that can validate instances. Keeping this
// as an interface means the builder doesn't depend on any particular
// JSON-Schema library directly.
type SchemaCompiler interface {
	Compile(schema json.RawMessage) (CompiledSchema, error)
}

// CompiledSchema validates a decoded JSON value (the result of
// encoding/json unmarshaling into any) against a previously compiled
// schema.
type CompiledSchema interface {
	Valid(instance any) bool
}

// CompiledParam is a single method parameter after schema compilation.
type CompiledParam struct {
	Name       string
	Required   bool
	Deprecated bool
	Schema     CompiledSchema
}

// CompiledMethod is a single method after schema compilation: its
// parameter-structure rule, its params in declaration order, and its
// (optional) compiled result schema.
type CompiledMethod struct {
	Name           string
	ParamStructure ParamStructure
	Deprecated     bool
	Params         *orderedmap.OrderedMap[string, CompiledParam]
	Result         CompiledSchema // nil when the method declares no result
}

// ParamStructure mirrors openrpc.ParamStructure without importing the
// openrpc package's ReferenceOr machinery into the checker's public API.
type ParamStructure int

const (
	ParamStructureEither ParamStructure = iota
	ParamStructureByName
	ParamStructureByPosition
)

// Checker is an immutable, built-once, read-only collection of compiled
// methods, safe to share across concurrently running proxy workers.
type Checker struct {
	methods map[string]*CompiledMethod
}

// Lookup returns the compiled method with the given name, if any.
func (c *Checker) Lookup(method string) (*CompiledMethod, bool) {
	m, ok := c.methods[method]
	return m, ok
}
