package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadapter "customerapp/internal/adapter/http"
	"customerapp/internal/adapter/telemetry"
	"customerapp/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run migrations and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		logger, err := config.NewLokiLogger(cfg.ServiceName, cfg.LokiURL, !cfg.IsProduction())
		if err != nil {
			return err
		}
		defer logger.Sync()

		tel, err := telemetry.NewContainer(ctx, telemetry.Config{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Environment:    cfg.Environment,
			MetricsPort:    cfg.MetricsPort,
			OTLPEndpoint:   cfg.OTLPEndpoint,
			TraceExporter:  cfg.TraceExporter,
		}, logger.Logger)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		tel.Start()

		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := tel.Shutdown(shutdownCtx); err != nil {
				logger.Logger.Error("telemetry shutdown failed", zap.Error(err))
			}
		}()

		return httpadapter.StartServer(ctx, cfg, logger, tel)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
