package checker

import (
	"testing"

	assert "github.com/stretchr/testify/require"

	"github.com/team-telnyx/openrpc-proxy/openrpc"
	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

func numberSchema() openrpc.Schema { return openrpc.ObjectSchema(map[string]any{"type": "number"}) }

func TestBuild(t *testing.T) {
	// A well-formed method compiles with its params in declaration order
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name: "Filecoin.Add",
					Params: []resolved.ContentDescriptor{
						{Name: "a", Required: true, Schema: numberSchema()},
						{Name: "b", Required: true, Schema: numberSchema()},
					},
					Result: &resolved.ContentDescriptor{Name: "sum", Schema: numberSchema()},
				},
			},
		}

		c, err := Build(doc, fakeCompiler{})
		assert.NoError(t, err)

		m, ok := c.Lookup("Filecoin.Add")
		assert.True(t, ok)
		assert.Equal(t, 2, m.Params.Len())
		assert.NotNil(t, m.Result)
	}

	// Duplicate method names are rejected
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{Name: "m"},
				{Name: "m"},
			},
		}

		_, err := Build(doc, fakeCompiler{})
		assert.Error(t, err)
		var target *DuplicateMethodError
		assert.ErrorAs(t, err, &target)
	}

	// A required parameter after an optional one is rejected for
	// positional methods
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name:           "m",
					ParamStructure: openrpc.ParamStructureByPosition,
					Params: []resolved.ContentDescriptor{
						{Name: "a", Required: false, Schema: numberSchema()},
						{Name: "b", Required: true, Schema: numberSchema()},
					},
				},
			},
		}

		_, err := Build(doc, fakeCompiler{})
		assert.Error(t, err)
		var target *OptionalBeforeRequiredError
		assert.ErrorAs(t, err, &target)
	}

	// The same out-of-order rule is waived for by-name methods
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name:           "m",
					ParamStructure: openrpc.ParamStructureByName,
					Params: []resolved.ContentDescriptor{
						{Name: "a", Required: false, Schema: numberSchema()},
						{Name: "b", Required: true, Schema: numberSchema()},
					},
				},
			},
		}

		_, err := Build(doc, fakeCompiler{})
		assert.NoError(t, err)
	}

	// Duplicate parameter names are rejected for by-name methods
	{
		doc := &resolved.OpenRPC{
			Methods: []resolved.Method{
				{
					Name:           "m",
					ParamStructure: openrpc.ParamStructureByName,
					Params: []resolved.ContentDescriptor{
						{Name: "a", Schema: numberSchema()},
						{Name: "a", Schema: numberSchema()},
					},
				},
			},
		}

		_, err := Build(doc, fakeCompiler{})
		assert.Error(t, err)
		var target *DuplicateParamError
		assert.ErrorAs(t, err, &target)
	}
}
