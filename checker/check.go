package checker

import (
	"encoding/json"

	"github.com/team-telnyx/openrpc-proxy/jsonrpc"
)

// Check validates a single JSON-RPC exchange against m and returns every
// Annotation found, in the fixed order the steps below run in. resp may be
// nil when no response was observed (for example, when a notification was
// sent and the origin closed the connection without replying).
func (m *CompiledMethod) Check(req *jsonrpc.Request, resp *jsonrpc.Response) []Annotation {
	var out []Annotation

	if mismatch := paramStructureMismatch(m.ParamStructure, req.Params.Structure); mismatch {
		out = append(out, Annotation{Kind: IncorrectParamStructure})
	}

	out = append(out, m.checkParams(req)...)

	out = append(out, m.checkResponse(req, resp)...)

	if m.Deprecated {
		out = append(out, Annotation{Kind: DeprecatedMethod})
	}

	return out
}

func paramStructureMismatch(declared ParamStructure, observed jsonrpc.ParamStructure) bool {
	switch observed {
	case jsonrpc.ParamsAbsent:
		return false
	case jsonrpc.ParamsByPosition:
		return declared == ParamStructureByName
	case jsonrpc.ParamsByName:
		return declared == ParamStructureByPosition
	default:
		return false
	}
}

func (m *CompiledMethod) checkParams(req *jsonrpc.Request) []Annotation {
	var out []Annotation

	switch req.Params.Structure {
	case jsonrpc.ParamsByPosition:
		positional, err := req.Params.ByPosition()
		if err != nil {
			positional = nil
		}
		cursor := 0
		for pair := m.Params.Oldest(); pair != nil; pair = pair.Next() {
			param := pair.Value
			var value json.RawMessage
			if cursor < len(positional) {
				value = positional[cursor]
				cursor++
			}
			out = append(out, checkOneParam(param, value)...)
		}
		if cursor < len(positional) {
			out = append(out, Annotation{Kind: ExcessParam})
		}

	default:
		named, err := req.Params.ByName()
		if err != nil {
			named = nil
		}
		consumed := make(map[string]bool)
		for pair := m.Params.Oldest(); pair != nil; pair = pair.Next() {
			param := pair.Value
			value, ok := named.Get(param.Name)
			if ok {
				consumed[param.Name] = true
			} else {
				value = nil
			}
			out = append(out, checkOneParam(param, value)...)
		}
		excess := false
		for _, key := range named.Keys() {
			if !consumed[key] {
				excess = true
				break
			}
		}
		if excess {
			out = append(out, Annotation{Kind: ExcessParam})
		}
	}

	return out
}

func checkOneParam(param CompiledParam, value json.RawMessage) []Annotation {
	var out []Annotation
	supplied := value != nil

	if !supplied {
		if param.Required {
			out = append(out, Annotation{Kind: MissingRequiredParam, Param: param.Name})
		}
		return out
	}

	if param.Deprecated {
		out = append(out, Annotation{Kind: DeprecatedParam, Param: param.Name})
	}

	var decoded any
	if err := json.Unmarshal(value, &decoded); err != nil || param.Schema == nil || !param.Schema.Valid(decoded) {
		out = append(out, Annotation{Kind: InvalidParam, Param: param.Name})
	}

	return out
}

func (m *CompiledMethod) checkResponse(req *jsonrpc.Request, resp *jsonrpc.Response) []Annotation {
	hasID := !req.ID.IsNotification()
	declaresResult := m.Result != nil
	responsePresent := resp != nil

	if !hasID && !declaresResult && !responsePresent {
		return nil
	}

	if hasID && declaresResult && responsePresent {
		if !idsMatch(req.ID, resp.ID) {
			return []Annotation{{Kind: BadNotification}}
		}
		if resp.IsError() {
			return nil
		}
		var decoded any
		if err := json.Unmarshal(resp.Result, &decoded); err != nil || !m.Result.Valid(decoded) {
			return []Annotation{{Kind: InvalidResult}}
		}
		return nil
	}

	return []Annotation{{Kind: BadNotification}}
}

func idsMatch(a, b jsonrpc.ID) bool {
	return string(a.Raw()) == string(b.Raw())
}
