package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/trivia-proxy/internal/adapters/httpapi"
)

func newServeCmd(app *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the trivia proxy HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			addr := listen
			if addr == "" {
				addr = app.config.Listen
			}

			router := httpapi.NewRouter(httpapi.NewHandler(app.service))
			return httpapi.Serve(ctx, addr, router)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (defaults to the configured one)")

	return cmd
}
