package openrpc

import "fmt"

// BrokenReferenceError is returned when a "$ref" cannot be resolved: it
// doesn't point into components at all, it points at a bucket the target
// type isn't drawn from, or the key isn't present in that bucket.
type BrokenReferenceError struct {
	Reference string
	Reason    string
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("broken reference %q: %s", e.Reference, e.Reason)
}

// MethodsBucketError is returned when a method entry is itself a Reference.
// OpenRPC documents have no "components.methods" bucket, so any "$ref"
// found directly in the top-level "methods" array can never resolve and is
// always rejected rather than silently treated as "no such component".
type MethodsBucketError struct {
	Reference string
}

func (e *MethodsBucketError) Error() string {
	return fmt.Sprintf("method entry %q is a reference, but OpenRPC documents have no components.methods bucket to resolve it against", e.Reference)
}

// NoComponentsError is returned when a Reference is found but the document
// declares no components bucket of the kind it would resolve against
// (either no "components" object at all, or one without that bucket).
type NoComponentsError struct {
	Reference string
}

func (e *NoComponentsError) Error() string {
	return fmt.Sprintf("reference %q cannot be resolved: document has no components of the referenced kind", e.Reference)
}
