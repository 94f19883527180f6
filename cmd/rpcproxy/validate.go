package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/team-telnyx/openrpc-proxy/checker"
	"github.com/team-telnyx/openrpc-proxy/openrpc"
	"github.com/team-telnyx/openrpc-proxy/openrpc/resolved"
)

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Report every method/parameter ordering problem in an OpenRPC document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := openrpc.LoadResolved(args[0])
			if err != nil {
				return err
			}

			problems := accumulateProblems(doc)
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d problem(s) found", len(problems))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	return cmd
}

// accumulateProblems walks every method independently and collects every
// duplicate-method, duplicate-parameter, and out-of-order-required-param
// problem it finds, rather than stopping at the first one the way
// checker.Build does when compiling for live traffic.
func accumulateProblems(doc *resolved.OpenRPC) []string {
	var problems []string
	seenMethods := make(map[string]bool)

	for _, m := range doc.Methods {
		if seenMethods[m.Name] {
			problems = append(problems, (&checker.DuplicateMethodError{Method: m.Name}).Error())
		}
		seenMethods[m.Name] = true

		structure := paramStructureOf(m.ParamStructure)
		seenOptional := false
		seenParams := make(map[string]bool)

		for i, p := range m.Params {
			if p.Required && seenOptional && structure != checker.ParamStructureByName {
				problems = append(problems, (&checker.OptionalBeforeRequiredError{Method: m.Name, Index: i}).Error())
			}
			if !p.Required {
				seenOptional = true
			}
			if seenParams[p.Name] && structure != checker.ParamStructureByPosition {
				problems = append(problems, (&checker.DuplicateParamError{Method: m.Name, Param: p.Name}).Error())
			}
			seenParams[p.Name] = true
		}
	}

	return problems
}

func paramStructureOf(p openrpc.ParamStructure) checker.ParamStructure {
	switch p {
	case openrpc.ParamStructureByName:
		return checker.ParamStructureByName
	case openrpc.ParamStructureByPosition:
		return checker.ParamStructureByPosition
	default:
		return checker.ParamStructureEither
	}
}
