// Command rpcproxy runs a validating reverse proxy for JSON-RPC 2.0
// traffic, driven by an OpenRPC document, plus a handful of standalone
// tools for working with that document offline.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpcproxy",
		Short: "Validating reverse proxy for JSON-RPC 2.0 traffic",
	}

	root.AddCommand(newServeCmd())
	root.AddCommand(newOpenRPCCmd())
	root.AddCommand(newCSV2JSONCmd())
	return root
}

func newOpenRPCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openrpc",
		Short: "Inspect and validate OpenRPC documents",
	}
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newDiffCmd())
	return cmd
}
