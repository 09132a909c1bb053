package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotepage/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotepage/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotepage/internal/platform/config"
	"github.com/jsamuelsen/quotepage/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// AppConfig contains application configuration.
	AppConfig *config.AppConfig

	// PageHandler serves the quote page at the root route.
	PageHandler *handlers.PageHandler

	// QuoteHandler serves the quote API endpoints.
	QuoteHandler *handlers.QuoteHandler

	// HealthHandler handles health check endpoints.
	HealthHandler *handlers.HealthHandler

	// Timeout is the default request timeout.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Request ID - generate/extract request ID
//  3. Correlation ID - handle distributed tracing correlation
//  4. OpenTelemetry tracing - span per request
//  5. OpenTelemetry metrics - request metrics and trace ID exposure
//  6. Logging - request logging (skips health endpoints)
//  7. Timeout - request deadline (applied per-group)
//
// Route groups:
//   - / (page): the rendered quote page
//   - /-/ (internal): health endpoints
//   - /api/v1/ (public API): quote endpoints
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	// Apply global middleware in order
	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
		telemetry.TracingMiddleware(cfg.AppConfig.Name),
		telemetry.Middleware(),
		middleware.Logging(cfg.Logger),
	)

	// Register health endpoints (no timeout for probes)
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	// The page route gets the same deadline as the API so a stuck
	// render cannot hold a connection open indefinitely.
	if cfg.PageHandler != nil {
		page := engine.Group("/")
		if cfg.Timeout > 0 {
			page.Use(middleware.SimpleTimeout(cfg.Timeout))
		}
		cfg.PageHandler.RegisterPageRoutes(page)
	}

	// Setup API v1 routes with timeout
	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	// Register API routes
	setupAPIRoutes(apiV1, cfg)
}

// setupAPIRoutes registers the quote API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}
}

// SetupMinimalRouter sets up a minimal router with just health endpoints.
// Useful for testing or lightweight deployments.
func SetupMinimalRouter(engine *gin.Engine, logger *slog.Logger, healthHandler *handlers.HealthHandler) {
	engine.Use(
		middleware.Recovery(logger),
		middleware.RequestID(),
	)

	if healthHandler != nil {
		healthHandler.RegisterHealthRoutesOnEngine(engine)
	}
}

// NewDefaultRouterConfig creates a RouterConfig with sensible defaults.
func NewDefaultRouterConfig(
	logger *slog.Logger,
	appCfg *config.AppConfig,
	pageHandler *handlers.PageHandler,
	quoteHandler *handlers.QuoteHandler,
	healthHandler *handlers.HealthHandler,
) RouterConfig {
	return RouterConfig{
		Logger:        logger,
		AppConfig:     appCfg,
		PageHandler:   pageHandler,
		QuoteHandler:  quoteHandler,
		HealthHandler: healthHandler,
		Timeout:       DefaultRequestTimeout,
	}
}
