// Package http provides the API server hosting the gateway operation and
// callback endpoints.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	"github.com/jameskabz/mpesa/internal/config"
	gatewayHTTP "github.com/jameskabz/mpesa/internal/gateway/http"
	"github.com/jameskabz/mpesa/internal/metrics"
	webhookHTTP "github.com/jameskabz/mpesa/internal/webhook/http"
	webhookUseCase "github.com/jameskabz/mpesa/internal/webhook/usecase"
)

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new API server. The database handle is used by the
// readiness probe.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware dependencies for route setup.
type RouterConfig struct {
	Config           *config.Config
	STKHandler       *gatewayHTTP.STKHandler
	B2CHandler       *gatewayHTTP.B2CHandler
	C2BHandler       *gatewayHTTP.C2BHandler
	UtilityHandler   *gatewayHTTP.UtilityHandler
	CallbackHandler  *webhookHTTP.CallbackHandler
	WebhookValidator *webhookUseCase.Validator
	MeterProvider    metric.MeterProvider
}

// SetupRouter assembles the Gin router: ambient middleware, health probes,
// the operation endpoints, and the callback endpoints under the configured
// route prefix.
func (s *Server) SetupRouter(rc RouterConfig) *gin.Engine {
	gin.SetMode(rc.Config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		rc.Config.CORSEnabled,
		rc.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if rc.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(rc.MeterProvider, rc.Config.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	prefix := rc.Config.Mpesa.GetString("route_prefix", "mpesa")
	api := router.Group("/" + prefix)

	// Operation endpoints, rate limited per client IP when enabled.
	ops := api.Group("")
	if rc.Config.RateLimitEnabled {
		ops.Use(RateLimitMiddleware(
			rc.Config.RateLimitRequestsPerSec,
			rc.Config.RateLimitBurst,
			s.logger,
		))
	}

	ops.POST("/stk/push", rc.STKHandler.PushHandler)
	ops.POST("/stk/query", rc.STKHandler.QueryHandler)
	ops.POST("/b2c/send", rc.B2CHandler.SendHandler)
	ops.POST("/b2c/validated", rc.B2CHandler.ValidatedHandler)
	ops.POST("/c2b/register", rc.C2BHandler.RegisterHandler)
	ops.POST("/c2b/simulate", rc.C2BHandler.SimulateHandler)
	ops.POST("/transaction/status", rc.UtilityHandler.TransactionStatusHandler)
	ops.POST("/account/balance", rc.UtilityHandler.AccountBalanceHandler)
	ops.POST("/reversal", rc.UtilityHandler.ReversalHandler)

	// Callback endpoints, behind webhook validation. Never rate limited:
	// throttling gateway deliveries would trigger redelivery storms.
	cbs := api.Group("")
	cbs.Use(webhookHTTP.ValidationMiddleware(rc.WebhookValidator, s.logger))

	cbs.POST("/stk/callback", rc.CallbackHandler.STKHandler)
	cbs.POST("/b2c/result", rc.CallbackHandler.B2CResultHandler)
	cbs.POST("/b2c/timeout", rc.CallbackHandler.B2CTimeoutHandler)
	cbs.POST("/c2b/validation", rc.CallbackHandler.C2BValidationHandler)
	cbs.POST("/c2b/confirmation", rc.CallbackHandler.C2BConfirmationHandler)
	cbs.POST("/transaction/status/result", rc.CallbackHandler.TransactionStatusResultHandler)
	cbs.POST("/transaction/status/timeout", rc.CallbackHandler.TransactionStatusTimeoutHandler)
	cbs.POST("/account/balance/result", rc.CallbackHandler.AccountBalanceResultHandler)
	cbs.POST("/account/balance/timeout", rc.CallbackHandler.AccountBalanceTimeoutHandler)
	cbs.POST("/reversal/result", rc.CallbackHandler.ReversalResultHandler)
	cbs.POST("/reversal/timeout", rc.CallbackHandler.ReversalTimeoutHandler)

	s.server.Handler = router

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the API server. SetupRouter must have been called first.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can do useful work: the
// database must answer a ping within a short deadline.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	ready := true

	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": components,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": components,
	})
}
