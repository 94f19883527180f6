package openrpc

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

// Load reads and decodes an OpenRPC document from a JSON file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OpenRPC document %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing OpenRPC document %s: %w", path, err)
	}
	return &doc, nil
}

// LoadResolved reads, resolves, and garbage-collects an OpenRPC document in
// one step — the form every consumer other than the resolver itself wants.
func LoadResolved(path string) (*resolved.OpenRPC, error) {
	doc, err := Load(path)
	if err != nil {
		return nil, err
	}
	r, err := Resolve(doc)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if err := PruneSchemas(r); err != nil {
		return nil, fmt.Errorf("pruning schemas in %s: %w", path, err)
	}
	return r, nil
}
