package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/team-telnyx/openrpc-proxy/checker"
	"github.com/team-telnyx/openrpc-proxy/openrpc"
	"github.com/team-telnyx/openrpc-proxy/proxy"
)

func newServeCmd() *cobra.Command {
	var (
		docPath     string
		localAddr   string
		origin      string
		concurrency int
		logConfig   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validating reverse proxy",
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedDoc, err := openrpc.LoadResolved(docPath)
			if err != nil {
				return err
			}

			chk, err := checker.Build(resolvedDoc, checker.NewKaptinlinCompiler())
			if err != nil {
				return fmt.Errorf("building checker: %w", err)
			}

			cfg := proxy.Config{
				LocalAddr:   localAddr,
				Origin:      origin,
				Concurrency: concurrency,
				Checker:     chk,
			}

			if logConfig != "" {
				lc, err := proxy.LoadLogConfig(logConfig)
				if err != nil {
					return err
				}
				logger, err := proxy.NewLogger(lc)
				if err != nil {
					return err
				}
				cfg.Logger = logger
			} else {
				logger, err := proxy.NewLogger(proxy.LogConfig{Level: "info"})
				if err != nil {
					return err
				}
				cfg.Logger = logger
			}

			return proxy.Serve(context.Background(), cfg)
		},
	}

	cmd.Flags().StringVar(&docPath, "openrpc", "", "path to the OpenRPC document")
	cmd.Flags().StringVar(&localAddr, "listen", ":8080", "local address to listen on")
	cmd.Flags().StringVar(&origin, "origin", "", "origin server to forward requests to")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "maximum connections served concurrently (0 = number of logical CPUs)")
	cmd.Flags().StringVar(&logConfig, "log-config", "", "path to a JSON log configuration file")
	cmd.MarkFlagRequired("openrpc")
	cmd.MarkFlagRequired("origin")

	return cmd
}
