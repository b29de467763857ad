package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jameskabz/mpesa/internal/app"
	"github.com/jameskabz/mpesa/internal/config"
	internalhttp "github.com/jameskabz/mpesa/internal/http"
)

// RunServer boots the gateway API server and, when metrics are enabled, the
// metrics server on its own port. Blocks until SIGINT/SIGTERM or a fatal
// server error, then shuts both servers down within the configured timeout.
func RunServer(ctx context.Context, version string) error {
	cfg := config.Load()
	gin.SetMode(cfg.GetGinMode())

	container := app.NewContainer(cfg)
	logger := container.Logger()
	logger.Info("starting mpesa gateway", slog.String("version", version))

	defer closeContainer(container, logger)

	apiServer, err := container.HTTPServer()
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	metricsServer, err := container.MetricsServer()
	if err != nil {
		return fmt.Errorf("failed to initialize metrics server: %w", err)
	}

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	serverErr := make(chan error, 2)
	go func() {
		if err := apiServer.Start(ctx); err != nil {
			serverErr <- fmt.Errorf("api server error: %w", err)
		}
	}()
	if metricsServer != nil {
		go func() {
			if err := metricsServer.Start(ctx); err != nil {
				serverErr <- fmt.Errorf("metrics server error: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		return stopServers(cfg, apiServer, metricsServer, nil)
	case err := <-serverErr:
		logger.Error("server error, initiating shutdown", slog.Any("error", err))
		return stopServers(cfg, apiServer, metricsServer, err)
	}
}

// stopServers shuts down both servers within the configured timeout, joining
// any shutdown errors with cause.
func stopServers(
	cfg *config.Config,
	apiServer *internalhttp.Server,
	metricsServer *internalhttp.MetricsServer,
	cause error,
) error {
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.DBConnMaxLifetime)
	defer shutdownCancel()

	var errs []error
	if cause != nil {
		errs = append(errs, cause)
	}

	if apiServer != nil {
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("api server shutdown: %w", err))
		}
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}
