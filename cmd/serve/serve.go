// Package serve implements the serve command, which runs the resolve HTTP
// service.
package serve

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newsurl/cmd/common"
	"github.com/jonesrussell/newsurl/internal/api"
	"github.com/jonesrussell/newsurl/internal/handler"
	"github.com/jonesrussell/newsurl/internal/logger"
)

// address overrides the configured listen address when set.
var address string

// Cmd represents the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the resolve HTTP service",
	Long: `Run an HTTP service exposing the resolver.

Endpoints:
  GET  /api/v1/resolve?url=...   resolve a redirect URL
  POST /api/v1/resolve           resolve, JSON body {"url": "..."}
  GET  /r?u=...                  resolve and redirect (302)
  GET  /health                   health check
  GET  /metrics                  Prometheus metrics
`,
	RunE: runServe,
}

// Command returns the serve command for use in the root command.
func Command() *cobra.Command {
	Cmd.Flags().StringVar(&address, "address", "", "listen address (overrides server.address)")
	return Cmd
}

// runServe executes the serve command.
func runServe(cmd *cobra.Command, _ []string) error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() { _ = deps.Logger.Sync() }()

	if address != "" {
		deps.Config.Server.Address = address
	}

	res := common.NewResolver(deps)
	metrics := api.NewMetrics()

	resolveHandler := handler.NewResolveHandler(res, metrics, deps.Logger)
	healthHandler := handler.NewHealthHandler(deps.Config.App.Name, deps.Config.App.Version)

	server := api.NewServer(deps.Config.Server, deps.Config.App.Debug, deps.Logger,
		func(router *gin.Engine) {
			handler.SetupRoutes(router, resolveHandler, healthHandler, metrics)
		})

	deps.Logger.Info("Resolve service starting",
		logger.String("address", deps.Config.Server.Address),
		logger.String("environment", deps.Config.App.Environment),
	)

	return server.RunWithGracefulShutdown(cmd.Context())
}
