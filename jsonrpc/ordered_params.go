package jsonrpc

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedParams is a by-name params object that preserves the field order
// it was written in, so Keys reports names in wire order. The checker's
// Annotation output does not depend on this order: it walks a method's
// declared params in declaration order and reports any number of excess
// params as a single ExcessParam.
type OrderedParams struct {
	m *orderedmap.OrderedMap[string, json.RawMessage]
}

func parseOrderedParams(raw json.RawMessage) (*OrderedParams, error) {
	om := orderedmap.New[string, json.RawMessage]()
	if raw == nil {
		return &OrderedParams{m: om}, nil
	}
	if err := json.Unmarshal(raw, om); err != nil {
		return nil, fmt.Errorf("decoding named params: %w", err)
	}
	return &OrderedParams{m: om}, nil
}

// Get returns the raw value for name and whether it was present.
func (p *OrderedParams) Get(name string) (json.RawMessage, bool) {
	if p == nil || p.m == nil {
		return nil, false
	}
	return p.m.Get(name)
}

// Len reports the number of params present.
func (p *OrderedParams) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Len()
}

// Keys returns the param names in the order they appeared on the wire.
func (p *OrderedParams) Keys() []string {
	if p == nil || p.m == nil {
		return nil
	}
	out := make([]string, 0, p.m.Len())
	for pair := p.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
