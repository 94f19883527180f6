package jsonrpc

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	// Positional params and an id mark a regular request
	{
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"Filecoin.Add","params":[1,2],"id":7}`))
		assert.NoError(t, err)
		assert.Equal(t, "Filecoin.Add", req.Method)
		assert.Equal(t, ParamsByPosition, req.Params.Structure)
		assert.False(t, req.ID.IsNotification())

		positional, err := req.Params.ByPosition()
		assert.NoError(t, err)
		assert.Equal(t, 2, len(positional))
	}

	// Named params decode through ByName, preserving field order
	{
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"m","params":{"b":2,"a":1}}`))
		assert.NoError(t, err)
		assert.Equal(t, ParamsByName, req.Params.Structure)
		assert.True(t, req.ID.IsNotification())

		named, err := req.Params.ByName()
		assert.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, named.Keys())
	}

	// A request with no params member at all is ParamsAbsent
	{
		req, err := ParseRequest([]byte(`{"jsonrpc":"2.0","method":"m","id":1}`))
		assert.NoError(t, err)
		assert.Equal(t, ParamsAbsent, req.Params.Structure)
	}
}

func TestParseResponse(t *testing.T) {
	// A successful response carries a result and no error
	{
		resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","result":3,"id":7}`))
		assert.NoError(t, err)
		assert.False(t, resp.IsError())
		assert.Equal(t, `7`, resp.ID.String())
	}

	// An error response carries no result
	{
		resp, err := ParseResponse([]byte(`{"jsonrpc":"2.0","error":{"code":-32602,"message":"bad"},"id":7}`))
		assert.NoError(t, err)
		assert.True(t, resp.IsError())
		assert.Equal(t, int64(-32602), resp.Error.Code)
	}
}
