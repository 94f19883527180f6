package openrpc

import (
	"fmt"

	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

// Resolve walks doc and produces a resolved.OpenRPC in which every
// ReferenceOr has been replaced by the value it points to.
//
// Schemas are the one exception: a ContentDescriptor's Schema may still
// contain "$ref" keywords pointing into the returned Schemas bucket. Those
// are left alone here and chased later by PruneSchemas, since schemas can be
// mutually recursive and eager inlining would not terminate.
func Resolve(doc *Document) (*resolved.OpenRPC, error) {
	var comps Components
	if doc.Components != nil {
		comps = *doc.Components
	}

	out := &resolved.OpenRPC{
		Info:    doc.Info,
		Servers: doc.Servers,
		Schemas: comps.Schemas,
	}

	methods := make([]resolved.Method, 0, len(doc.Methods))
	for _, m := range doc.Methods {
		if m.IsReference() {
			return nil, &MethodsBucketError{Reference: m.Reference()}
		}
		rm, err := resolveMethod(m.Value(), comps)
		if err != nil {
			return nil, fmt.Errorf("resolving method: %w", err)
		}
		methods = append(methods, rm)
	}
	out.Methods = methods
	return out, nil
}

func resolveMethod(m Method, comps Components) (resolved.Method, error) {
	tags := make([]Tag, 0, len(m.Tags))
	for _, t := range m.Tags {
		v, err := resolveOne(t, comps.Tags, "tags")
		if err != nil {
			return resolved.Method{}, err
		}
		tags = append(tags, v)
	}

	params := make([]resolved.ContentDescriptor, 0, len(m.Params))
	for _, p := range m.Params {
		cd, err := resolveOne(p, comps.ContentDescriptors, "contentDescriptors")
		if err != nil {
			return resolved.Method{}, fmt.Errorf("param: %w", err)
		}
		params = append(params, toResolvedCD(cd))
	}

	var result *resolved.ContentDescriptor
	if m.Result != nil {
		cd, err := resolveOne(*m.Result, comps.ContentDescriptors, "contentDescriptors")
		if err != nil {
			return resolved.Method{}, fmt.Errorf("result: %w", err)
		}
		rcd := toResolvedCD(cd)
		result = &rcd
	}

	errs := make([]Error, 0, len(m.Errors))
	for _, e := range m.Errors {
		v, err := resolveOne(e, comps.Errors, "errors")
		if err != nil {
			return resolved.Method{}, err
		}
		errs = append(errs, v)
	}

	examples := make([]ExamplePairing, 0, len(m.Examples))
	for _, ex := range m.Examples {
		v, err := resolveOne(ex, comps.ExamplePairingObjects, "examplePairingObjects")
		if err != nil {
			return resolved.Method{}, err
		}
		examples = append(examples, v)
	}

	return resolved.Method{
		Name:           m.Name,
		Tags:           tags,
		Summary:        m.Summary,
		Description:    m.Description,
		Params:         params,
		Result:         result,
		Deprecated:     boolValue(m.Deprecated),
		Errors:         errs,
		ParamStructure: paramStructureOrDefault(m.ParamStructure),
		Examples:       examples,
	}, nil
}

func toResolvedCD(cd ContentDescriptor) resolved.ContentDescriptor {
	return resolved.ContentDescriptor{
		Name:        cd.Name,
		Summary:     cd.Summary,
		Description: cd.Description,
		Schema:      cd.Schema,
		Required:    boolValue(cd.Required),
		Deprecated:  boolValue(cd.Deprecated),
	}
}

func boolValue(b *bool) bool { return b != nil && *b }

func paramStructureOrDefault(p ParamStructure) ParamStructure {
	if p == "" {
		return ParamStructureEither
	}
	return p
}

// resolveOne resolves a single ReferenceOr[T] against the named bucket of
// components. Inline values pass through untouched.
func resolveOne[T any](r ReferenceOr[T], bucket map[string]T, bucketName string) (T, error) {
	if !r.IsReference() {
		return r.Value(), nil
	}
	if bucket == nil {
		var zero T
		return zero, &NoComponentsError{Reference: r.Reference()}
	}
	key, ok := componentKey(r.Reference(), bucketName)
	if !ok {
		var zero T
		return zero, &BrokenReferenceError{
			Reference: r.Reference(),
			Reason:    fmt.Sprintf("does not point into components/%s", bucketName),
		}
	}
	v, ok := bucket[key]
	if !ok {
		var zero T
		return zero, &BrokenReferenceError{
			Reference: r.Reference(),
			Reason:    fmt.Sprintf("no such entry in components/%s", bucketName),
		}
	}
	return v, nil
}

// componentKey extracts the key from a "#/components/<bucket>/<key>"
// reference string, requiring that <bucket> matches bucketName exactly.
func componentKey(ref, bucketName string) (string, bool) {
	const prefix = "#/components/"
	if len(ref) <= len(prefix) || ref[:len(prefix)] != prefix {
		return "", false
	}
	rest := ref[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			if rest[:i] != bucketName {
				return "", false
			}
			return rest[i+1:], true
		}
	}
	return "", false
}
