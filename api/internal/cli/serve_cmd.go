package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"laporan-harian/api/internal/handle"
	"laporan-harian/api/internal/httpserver"
)

func newServeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Jalankan HTTP API (POST /v1/report, GET /healthz)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.Config == nil {
				return errors.New("serve: configuration not loaded")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			log := app.log().WithField("component", "serve")
			if !app.Reporter.Ready() {
				log.Warn("GEMINI_API_KEY is empty; starting degraded")
			}
			h := handle.New(app.Reporter, app.timeout(), app.log())
			return httpserver.Run(ctx, app.Config.Addr(), h.Routes(), log)
		},
	}
}
