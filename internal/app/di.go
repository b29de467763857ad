// Package app provides the dependency injection container assembling the
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/jameskabz/mpesa/internal/config"
	"github.com/jameskabz/mpesa/internal/database"
	gatewayHTTP "github.com/jameskabz/mpesa/internal/gateway/http"
	gatewayUseCase "github.com/jameskabz/mpesa/internal/gateway/usecase"
	"github.com/jameskabz/mpesa/internal/http"
	"github.com/jameskabz/mpesa/internal/metrics"
	recordRepository "github.com/jameskabz/mpesa/internal/record/repository"
	recordUseCase "github.com/jameskabz/mpesa/internal/record/usecase"
	webhookHTTP "github.com/jameskabz/mpesa/internal/webhook/http"
	webhookUseCase "github.com/jameskabz/mpesa/internal/webhook/usecase"
)

// Container holds all application dependencies and provides methods to access
// them. Components are created lazily on first access.
type Container struct {
	config *config.Config

	logger *slog.Logger
	db     *sql.DB

	recordRepo recordUseCase.RecordRepository
	recorder   recordUseCase.Recorder

	encryptor     gatewayUseCase.CredentialEncryptor
	gatewayClient gatewayUseCase.GatewayUseCase

	webhookValidator *webhookUseCase.Validator
	normalizer       *webhookUseCase.Normalizer

	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	recordRepoInit      sync.Once
	recorderInit        sync.Once
	encryptorInit       sync.Once
	gatewayClientInit   sync.Once
	validatorInit       sync.Once
	normalizerInit      sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// RecordRepository returns the audit record repository for the configured driver.
func (c *Container) RecordRepository() (recordUseCase.RecordRepository, error) {
	c.recordRepoInit.Do(func() {
		repo, err := c.initRecordRepository()
		if err != nil {
			c.initErrors["recordRepo"] = err
			return
		}
		c.recordRepo = repo
	})
	if storedErr, exists := c.initErrors["recordRepo"]; exists {
		return nil, storedErr
	}
	return c.recordRepo, nil
}

// Recorder returns the audit recorder honoring the store_requests and
// store_callbacks settings.
func (c *Container) Recorder() (recordUseCase.Recorder, error) {
	c.recorderInit.Do(func() {
		recorder, err := c.initRecorder()
		if err != nil {
			c.initErrors["recorder"] = err
			return
		}
		c.recorder = recorder
	})
	if storedErr, exists := c.initErrors["recorder"]; exists {
		return nil, storedErr
	}
	return c.recorder, nil
}

// CredentialEncryptor returns the security credential encryptor.
func (c *Container) CredentialEncryptor() gatewayUseCase.CredentialEncryptor {
	c.encryptorInit.Do(func() {
		c.encryptor = gatewayUseCase.NewEncryptor(c.config.Mpesa)
	})
	return c.encryptor
}

// GatewayClient returns the gateway client, instrumented with business
// metrics when metrics are enabled.
func (c *Container) GatewayClient() (gatewayUseCase.GatewayUseCase, error) {
	c.gatewayClientInit.Do(func() {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["gatewayClient"] = err
			return
		}

		client := gatewayUseCase.NewClient(
			c.config.Mpesa,
			c.CredentialEncryptor(),
			c.Logger(),
		)
		c.gatewayClient = gatewayUseCase.NewGatewayUseCaseWithMetrics(client, businessMetrics)
	})
	if storedErr, exists := c.initErrors["gatewayClient"]; exists {
		return nil, storedErr
	}
	return c.gatewayClient, nil
}

// WebhookValidator returns the webhook validator.
func (c *Container) WebhookValidator() *webhookUseCase.Validator {
	c.validatorInit.Do(func() {
		c.webhookValidator = webhookUseCase.NewValidator(c.config.Mpesa)
	})
	return c.webhookValidator
}

// Normalizer returns the callback normalizer.
func (c *Container) Normalizer() *webhookUseCase.Normalizer {
	c.normalizerInit.Do(func() {
		c.normalizer = webhookUseCase.NewNormalizer()
	})
	return c.normalizer
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder, no-op when metrics
// are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with routes configured. This initializes
// the whole dependency graph.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates a structured JSON logger based on the configured level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initRecordRepository selects the repository for the configured driver.
func (c *Container) initRecordRepository() (recordUseCase.RecordRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for record repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return recordRepository.NewMySQLRecordRepository(db), nil
	case "postgres":
		return recordRepository.NewPostgreSQLRecordRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initRecorder wires the recorder with the store_requests/store_callbacks flags.
func (c *Container) initRecorder() (recordUseCase.Recorder, error) {
	repo, err := c.RecordRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get record repository for recorder: %w", err)
	}

	return recordUseCase.NewRecordUseCase(
		recordUseCase.Config{
			StoreRequests:  c.config.Mpesa.GetBool("store_requests", true),
			StoreCallbacks: c.config.Mpesa.GetBool("store_callbacks", true),
		},
		repo,
		c.Logger(),
	), nil
}

// initHTTPServer assembles the handlers and configures the router.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	recorder, err := c.Recorder()
	if err != nil {
		return nil, fmt.Errorf("failed to get recorder for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	gateway, err := c.GatewayClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get gateway client for http server: %w", err)
	}

	logger := c.Logger()

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)

	routerConfig := http.RouterConfig{
		Config:           c.config,
		STKHandler:       gatewayHTTP.NewSTKHandler(gateway, recorder, c.config.Mpesa, logger),
		B2CHandler:       gatewayHTTP.NewB2CHandler(gateway, recorder, c.config.Mpesa, logger),
		C2BHandler:       gatewayHTTP.NewC2BHandler(gateway, logger),
		UtilityHandler:   gatewayHTTP.NewUtilityHandler(gateway, logger),
		CallbackHandler:  webhookHTTP.NewCallbackHandler(c.Normalizer(), recorder, logger),
		WebhookValidator: c.WebhookValidator(),
	}
	if provider != nil {
		routerConfig.MeterProvider = provider.MeterProvider()
	}

	server.SetupRouter(routerConfig)

	return server, nil
}
