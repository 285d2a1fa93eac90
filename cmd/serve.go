package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/spacecap/internal/httpapi"
	"github.com/spf13/cobra"
)

// serveCmd serves the JSON HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve rankings, breakdowns and comparisons over HTTP",
	Long: `Start a JSON HTTP API over the configured dataset and profile.

Endpoints:
  GET  /healthz
  GET  /api/v1/rankings?region=&limit=
  GET  /api/v1/countries/{id}
  GET  /api/v1/compare?ids=usa,chn
  POST /api/v1/score
  GET  /api/v1/weights
  GET  /api/v1/tiers

Examples:
  spacecap serve --data countries.yaml --addr :8080 --cors-origins https://dashboard.example.com`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return httpapi.Serve(ctx, cfg, cacheManager)
	},
}
