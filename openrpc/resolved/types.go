// Package resolved holds the dereferenced form of an OpenRPC document:
// every ReferenceOr has been replaced by its pointed-to value, so
// downstream code (the checker builder, the garbage collector) never has to
// resolve a ReferenceOr again. "$ref" keywords inside schemas are kept as
// they are.
package resolved

import "github.com/team-telnyx/openrpc-proxy/openrpc"

// OpenRPC is a resolved service description. Schemas still carries the
// components schema bucket: schema $refs are not inlined, since they point
// at other schemas and may be cyclic; the garbage collector follows them to
// decide which entries are reachable.
type OpenRPC struct {
	Info    openrpc.Info
	Servers []openrpc.Server
	Methods []Method
	Schemas map[string]openrpc.Schema
}

// Method is a resolved JSON-RPC method: every param, result, tag, error and
// example has been inlined.
type Method struct {
	Name           string
	Tags           []openrpc.Tag
	Summary        string
	Description    string
	Params         []ContentDescriptor
	Result         *ContentDescriptor
	Deprecated     bool
	Errors         []openrpc.Error
	ParamStructure openrpc.ParamStructure
	Examples       []openrpc.ExamplePairing
}

// ContentDescriptor is a resolved parameter or result descriptor. Its Schema
// may still contain "$ref" keywords pointing into OpenRPC.Schemas — those
// are followed by the garbage collector's reachability walk, not inlined
// here, since inlining every schema eagerly would not terminate on
// recursive schemas.
type ContentDescriptor struct {
	Name        string
	Summary     string
	Description string
	Schema      openrpc.Schema
	Required    bool
	Deprecated  bool
}
