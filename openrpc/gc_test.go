package openrpc

import (
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

func TestPruneSchemas(t *testing.T) {
	// An unreachable schema is swept away
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name: "m",
					Params: []resolved.ContentDescriptor{
						{Name: "a", Schema: ObjectSchema(map[string]any{"$ref": "#/components/schemas/A"})},
					},
				},
			},
			Schemas: map[string]Schema{
				"A": ObjectSchema(map[string]any{"type": "string"}),
				"B": ObjectSchema(map[string]any{"type": "number"}),
			},
		}

		assert.NoError(t, PruneSchemas(doc))

		_, aAlive := doc.Schemas["A"]
		_, bAlive := doc.Schemas["B"]
		assert.True(t, aAlive)
		assert.False(t, bAlive)
	}

	// A reachable schema nested under allOf keeps its target alive
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name: "m",
					Params: []resolved.ContentDescriptor{
						{Name: "a", Schema: ObjectSchema(map[string]any{
							"allOf": []any{
								map[string]any{"$ref": "#/components/schemas/Nested"},
							},
						})},
					},
				},
			},
			Schemas: map[string]Schema{
				"Nested": ObjectSchema(map[string]any{"type": "object"}),
			},
		}

		assert.NoError(t, PruneSchemas(doc))

		_, alive := doc.Schemas["Nested"]
		assert.True(t, alive)
	}

	// A self-referencing schema terminates instead of looping forever
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name: "m",
					Params: []resolved.ContentDescriptor{
						{Name: "a", Schema: ObjectSchema(map[string]any{"$ref": "#/components/schemas/Self"})},
					},
				},
			},
			Schemas: map[string]Schema{
				"Self": ObjectSchema(map[string]any{
					"properties": map[string]any{
						"child": map[string]any{"$ref": "#/components/schemas/Self"},
					},
				}),
			},
		}

		assert.NoError(t, PruneSchemas(doc))

		_, alive := doc.Schemas["Self"]
		assert.True(t, alive)
	}

	// A $ref that doesn't resolve to any components/schemas entry is a
	// BrokenReferenceError, not a silently dropped schema.
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name: "m",
					Params: []resolved.ContentDescriptor{
						{Name: "a", Schema: ObjectSchema(map[string]any{"$ref": "#/components/schemas/Missing"})},
					},
				},
			},
			Schemas: map[string]Schema{},
		}

		err := PruneSchemas(doc)
		assert.Error(t, err)
		var target *BrokenReferenceError
		assert.ErrorAs(t, err, &target)
	}
}
