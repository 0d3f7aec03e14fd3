package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"customerapp/internal/adapter/database"
	"customerapp/internal/adapter/http/routes"
	"customerapp/internal/adapter/telemetry"
	"customerapp/pkg/config"
)

// StartServer opens the store, serves the API until SIGINT or SIGTERM and
// then drains in-flight requests.
func StartServer(ctx context.Context, cfg *config.AppConfig, logger *config.LokiLogger, tel *telemetry.Container) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, database.Config{
		Driver:          cfg.DatabaseDriver,
		Path:            cfg.DatabasePath,
		URL:             cfg.DatabaseURL,
		Name:            cfg.ServiceName,
		SQLLog:          cfg.SQLLog,
		MaxOpenConns:    25,
		MaxIdleConns:    5,
		ConnMaxLifetime: 5 * time.Minute,
	})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := tel.RegisterDBStats(db.DB, cfg.ServiceName); err != nil {
		return err
	}

	container, err := NewContainer(db, logger, tel.NewTelemetryProbe())
	if err != nil {
		return err
	}

	router := routes.SetupRouter(routes.HandlersConfig{
		CustomerHandler: container.CustomerHandler,
	}, routes.Options{
		Config:  cfg,
		Logger:  logger,
		Metrics: tel.AppMetrics,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.InfoWithTrace(ctx, "server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("database_driver", string(db.Dialect)),
		zap.Bool("rate_limit_enabled", cfg.RateLimitEnabled),
		zap.Bool("https_enforced", cfg.EnforceHTTPS))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.InfoWithTrace(context.Background(), "server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
