package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/team-telnyx/openrpc-proxy/openrpc"
	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <left> <right>",
		Short: "Print a minimal structural diff between two OpenRPC documents",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			left, err := openrpc.LoadResolved(args[0])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[0], err)
			}
			right, err := openrpc.LoadResolved(args[1])
			if err != nil {
				return fmt.Errorf("loading %s: %w", args[1], err)
			}

			lines := diffDocuments(left, right)
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no structural differences")
				return nil
			}
			for _, l := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), l)
			}
			return nil
		},
	}
	return cmd
}

// diffDocuments reports which methods were added or removed between left
// and right, and for methods present in both, whether the result schema or
// any param's schema changed. It does not attempt a field-by-field schema
// diff — schema bodies are compared by their canonical JSON encoding.
func diffDocuments(left, right *resolved.OpenRPC) []string {
	var lines []string

	leftByName := methodsByName(left.Methods)
	rightByName := methodsByName(right.Methods)

	for name := range leftByName {
		if _, ok := rightByName[name]; !ok {
			lines = append(lines, fmt.Sprintf("- method removed: %s", name))
		}
	}
	for name := range rightByName {
		if _, ok := leftByName[name]; !ok {
			lines = append(lines, fmt.Sprintf("+ method added: %s", name))
		}
	}

	for name, lm := range leftByName {
		rm, ok := rightByName[name]
		if !ok {
			continue
		}
		lines = append(lines, diffMethod(name, lm, rm)...)
	}

	return lines
}

func diffMethod(name string, l, r resolved.Method) []string {
	var lines []string

	lParams := paramsByName(l.Params)
	rParams := paramsByName(r.Params)

	for pname := range lParams {
		if _, ok := rParams[pname]; !ok {
			lines = append(lines, fmt.Sprintf("- %s: param removed: %s", name, pname))
		}
	}
	for pname := range rParams {
		if _, ok := lParams[pname]; !ok {
			lines = append(lines, fmt.Sprintf("+ %s: param added: %s", name, pname))
		}
	}
	for pname, lp := range lParams {
		rp, ok := rParams[pname]
		if !ok {
			continue
		}
		if !schemaEqual(lp.Schema, rp.Schema) {
			lines = append(lines, fmt.Sprintf("~ %s: param %s schema changed", name, pname))
		}
		if lp.Required != rp.Required {
			lines = append(lines, fmt.Sprintf("~ %s: param %s required changed (%t -> %t)", name, pname, lp.Required, rp.Required))
		}
	}

	switch {
	case l.Result == nil && r.Result != nil:
		lines = append(lines, fmt.Sprintf("+ %s: result added", name))
	case l.Result != nil && r.Result == nil:
		lines = append(lines, fmt.Sprintf("- %s: result removed", name))
	case l.Result != nil && r.Result != nil && !schemaEqual(l.Result.Schema, r.Result.Schema):
		lines = append(lines, fmt.Sprintf("~ %s: result schema changed", name))
	}

	return lines
}

func methodsByName(methods []resolved.Method) map[string]resolved.Method {
	out := make(map[string]resolved.Method, len(methods))
	for _, m := range methods {
		out[m.Name] = m
	}
	return out
}

func paramsByName(params []resolved.ContentDescriptor) map[string]resolved.ContentDescriptor {
	out := make(map[string]resolved.ContentDescriptor, len(params))
	for _, p := range params {
		out[p.Name] = p
	}
	return out
}

func schemaEqual(a, b openrpc.Schema) bool {
	aj, err1 := json.Marshal(a)
	bj, err2 := json.Marshal(b)
	if err1 != nil || err2 != nil {
		return false
	}
	return string(aj) == string(bj)
}
