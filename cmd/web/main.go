// Command web serves the auditor portal.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	webcmd "github.com/auditgate/portal/internal/cmd/web"
	"github.com/auditgate/portal/internal/platform/config"
)

var version = "dev"

var httpAddr string

func main() {
	root := &cobra.Command{
		Use:           "auditgate-web",
		Short:         "Auditor portal for the audit review platform",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the portal web server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(*cobra.Command, []string) {
			fmt.Println(version)
		},
	})
	root.PersistentFlags().StringVar(&httpAddr, "http-addr", "", "HTTP listen address (overrides AUDITGATE_HTTP_ADDR)")
	root.CompletionOptions.DisableDefaultCmd = true

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		config.Exitf("auditgate-web: %v", err)
	}
}

func serve(ctx context.Context) error {
	cfg, err := webcmd.ParseConfig()
	if err != nil {
		return err
	}
	if httpAddr != "" {
		cfg.HTTPAddr = httpAddr
	}
	return webcmd.Run(ctx, cfg)
}
