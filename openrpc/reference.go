package openrpc

import (
	"encoding/json"
	"fmt"
)

// ReferenceOr is a tagged union holding either an inline value of type T, or
// a Reference to one defined elsewhere in the document's components.
//
// Exactly one of IsReference()/the inline value is meaningful at a time;
// there is deliberately no inheritance hierarchy here (per the "tagged
// variants over inheritance" design note) — callers switch on IsReference.
type ReferenceOr[T any] struct {
	reference string
	isRef     bool
	value     T
}

// Item wraps an inline value.
func Item[T any](v T) ReferenceOr[T] {
	return ReferenceOr[T]{value: v}
}

// Ref wraps a reference string of the form "#/components/<bucket>/<key>".
func Ref[T any](ref string) ReferenceOr[T] {
	return ReferenceOr[T]{reference: ref, isRef: true}
}

// IsReference reports whether this value is a Reference rather than an
// inline T.
func (r ReferenceOr[T]) IsReference() bool { return r.isRef }

// Reference returns the reference string. Only meaningful when
// IsReference() is true.
func (r ReferenceOr[T]) Reference() string { return r.reference }

// Value returns the inline value. Only meaningful when IsReference() is
// false.
func (r ReferenceOr[T]) Value() T { return r.value }

type referenceObject struct {
	Ref string `json:"$ref"`
}

// UnmarshalJSON implements the tagged-union decode: an object with a single
// "$ref" key decodes as a Reference, anything else decodes as an inline T.
func (r *ReferenceOr[T]) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err == nil {
		if _, ok := probe["$ref"]; ok && len(probe) == 1 {
			var ref referenceObject
			if err := json.Unmarshal(data, &ref); err != nil {
				return fmt.Errorf("decoding $ref: %w", err)
			}
			*r = ReferenceOr[T]{reference: ref.Ref, isRef: true}
			return nil
		}
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decoding inline value: %w", err)
	}
	*r = ReferenceOr[T]{value: value}
	return nil
}

// MarshalJSON implements the inverse of UnmarshalJSON.
func (r ReferenceOr[T]) MarshalJSON() ([]byte, error) {
	if r.isRef {
		return json.Marshal(referenceObject{Ref: r.reference})
	}
	return json.Marshal(r.value)
}
