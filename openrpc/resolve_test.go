package openrpc

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	// A method with inline params and result resolves unchanged
	{
		doc := &Document{
			OpenRPC: "1.2.6",
			Info:    Info{Title: "test", Version: "0.0.1"},
			Methods: []ReferenceOr[Method]{
				Item(Method{
					Name: "Filecoin.Add",
					Params: []ReferenceOr[ContentDescriptor]{
						Item(ContentDescriptor{Name: "a", Schema: ObjectSchema(map[string]any{"type": "number"})}),
					},
					Result: refItem(ContentDescriptor{Name: "sum", Schema: ObjectSchema(map[string]any{"type": "number"})}),
				}),
			},
		}

		resolved, err := Resolve(doc)
		assert.NoError(t, err)
		assert.Equal(t, 1, len(resolved.Methods))
		assert.Equal(t, "Filecoin.Add", resolved.Methods[0].Name)
		assert.Equal(t, "a", resolved.Methods[0].Params[0].Name)
	}

	// A reference into components.contentDescriptors is substituted
	{
		doc := &Document{
			Methods: []ReferenceOr[Method]{
				Item(Method{
					Name: "Filecoin.Get",
					Params: []ReferenceOr[ContentDescriptor]{
						Ref[ContentDescriptor]("#/components/contentDescriptors/ID"),
					},
				}),
			},
			Components: &Components{
				ContentDescriptors: map[string]ContentDescriptor{
					"ID": {Name: "id", Schema: ObjectSchema(map[string]any{"type": "string"})},
				},
			},
		}

		resolved, err := Resolve(doc)
		assert.NoError(t, err)
		assert.Equal(t, "id", resolved.Methods[0].Params[0].Name)
	}

	// A $ref directly on a methods[] entry is rejected: there is no
	// components.methods bucket to resolve it against.
	{
		doc := &Document{
			Methods: []ReferenceOr[Method]{
				Ref[Method]("#/components/methods/Whatever"),
			},
		}

		_, err := Resolve(doc)
		assert.Error(t, err)
		var target *MethodsBucketError
		assert.ErrorAs(t, err, &target)
	}

	// A broken reference (here, a key missing from its bucket) is an error
	{
		doc := &Document{
			Methods: []ReferenceOr[Method]{
				Item(Method{
					Name: "Filecoin.Get",
					Params: []ReferenceOr[ContentDescriptor]{
						Ref[ContentDescriptor]("#/components/contentDescriptors/Missing"),
					},
				}),
			},
			Components: &Components{
				ContentDescriptors: map[string]ContentDescriptor{},
			},
		}

		_, err := Resolve(doc)
		assert.Error(t, err)
		var target *BrokenReferenceError
		assert.ErrorAs(t, err, &target)
	}
}

func refItem(cd ContentDescriptor) *ReferenceOr[ContentDescriptor] {
	r := Item(cd)
	return &r
}
