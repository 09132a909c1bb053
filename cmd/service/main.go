// Package main is the entry point for the service.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jsamuelsen/quotepage/internal/adapters/catalog"
	"github.com/jsamuelsen/quotepage/internal/adapters/flags"
	"github.com/jsamuelsen/quotepage/internal/adapters/http"
	"github.com/jsamuelsen/quotepage/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotepage/internal/adapters/render"
	"github.com/jsamuelsen/quotepage/internal/app"
	"github.com/jsamuelsen/quotepage/internal/domain"
	"github.com/jsamuelsen/quotepage/internal/platform/config"
	"github.com/jsamuelsen/quotepage/internal/platform/logging"
	"github.com/jsamuelsen/quotepage/internal/platform/telemetry"
	"github.com/jsamuelsen/quotepage/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the service.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting service",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(ctx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	// 5. Build the immutable quote catalog from configuration
	quoteCatalog, err := domain.NewCatalog(cfg.Quotes.Catalog)
	if err != nil {
		return fmt.Errorf("building quote catalog: %w", err)
	}

	// 6. Create the quote source backed by the catalog
	quoteSource, err := catalog.New(&catalog.Config{
		Catalog: quoteCatalog,
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("creating quote source: %w", err)
	}

	// 7. Create the page renderer from embedded templates
	pageRenderer, err := render.New(&render.Config{
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("creating page renderer: %w", err)
	}

	// 8. Warm up the render path: render every quote once so template or
	// escaping problems surface at startup instead of on a live request.
	executor := app.NewExecutor(logger)

	warmed, err := app.WarmUp(ctx, executor, app.WarmUpConfig{
		Source:   quoteSource,
		Renderer: pageRenderer,
		Template: cfg.Page.Template,
		Title:    cfg.Page.Title,
	})
	if err != nil {
		return fmt.Errorf("warming up page rendering: %w", err)
	}

	logger.Info("page rendering warmed up", slog.Int("quotes", warmed))

	// 9. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Source: quoteSource,
		Flags:  flags.NewEnv(),
		Logger: logger,
	})

	// 10. Create health registry and register component checks
	healthRegistry := ports.NewHealthRegistry()

	if err := healthRegistry.Register(quoteSource); err != nil {
		return fmt.Errorf("registering catalog health check: %w", err)
	}

	if err := healthRegistry.Register(pageRenderer); err != nil {
		return fmt.Errorf("registering renderer health check: %w", err)
	}

	// 11. Create handlers
	buildInfo := handlers.NewBuildInfo(Version, Commit, BuildTime)
	healthHandler := handlers.NewHealthHandler(healthRegistry, buildInfo)
	quoteHandler := handlers.NewQuoteHandler(quoteService)
	pageHandler := handlers.NewPageHandler(quoteService, pageRenderer, cfg.Page.Template, cfg.Page.Title)

	// 12. Create HTTP server
	server := http.New(&cfg.Server, logger)

	// 13. Setup router with all middleware and routes
	routerCfg := http.RouterConfig{
		Logger:        logger,
		AppConfig:     &cfg.App,
		PageHandler:   pageHandler,
		QuoteHandler:  quoteHandler,
		HealthHandler: healthHandler,
		Timeout:       http.DefaultRequestTimeout,
	}
	http.SetupRouter(server.Engine(), routerCfg)

	// 14. Start server (non-blocking)
	serverErr := server.Start()

	// 15. Wait for shutdown signal
	return waitForShutdown(ctx, logger, server, serverErr, cfg.Server.ShutdownTimeout)
}

// waitForShutdown blocks until a shutdown signal is received or server error occurs.
// It then performs graceful shutdown of the HTTP server.
func waitForShutdown(
	ctx context.Context,
	logger *slog.Logger,
	server *http.Server,
	serverErr <-chan error,
	shutdownTimeout time.Duration,
) error {
	// Listen for OS signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		// Server error during startup or runtime
		return fmt.Errorf("server error: %w", err)

	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	}

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	// Graceful shutdown sequence
	logger.Info("initiating graceful shutdown",
		slog.Duration("timeout", shutdownTimeout),
	)

	// Stop accepting new requests, drain in-flight
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("shutdown complete")

	return nil
}
