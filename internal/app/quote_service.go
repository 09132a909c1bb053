// Package app contains application services that orchestrate use cases.
// This is the application layer in Clean Architecture - it coordinates
// domain logic and infrastructure through ports.
//
// Application Layer Responsibilities:
//   - Orchestrate use cases (business workflows)
//   - Coordinate between domain and infrastructure
//   - Handle cross-cutting concerns (logging)
//
// What does NOT belong here:
//   - HTTP specifics (that's adapters)
//   - Template and catalog internals (that's adapters too)
//   - Core domain logic (that's the domain layer)
package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quotepage/internal/domain"
	"github.com/jsamuelsen/quotepage/internal/platform/logging"
	"github.com/jsamuelsen/quotepage/internal/ports"
)

// flagLogQuoteContent gates logging of full quote text on serve.
// Off by default: quote IDs are enough for correlation and keep logs lean.
const flagLogQuoteContent = "log-quote-content"

// QuoteService orchestrates quote-related use cases.
// It depends on port interfaces, not concrete implementations,
// following the Dependency Inversion Principle.
type QuoteService struct {
	source ports.QuoteSource
	flags  ports.FeatureFlags
	logger *slog.Logger
}

// QuoteServiceConfig contains configuration for the quote service.
type QuoteServiceConfig struct {
	// Source provides quotes. Required.
	Source ports.QuoteSource

	// Flags is an optional feature flag evaluator.
	Flags ports.FeatureFlags

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// NewQuoteService creates a new quote service with the provided dependencies.
// A nil source is a wiring bug, so it panics rather than deferring the
// failure to the first request.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Source == nil {
		panic("app: QuoteService requires a quote source")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &QuoteService{
		source: cfg.Source,
		flags:  cfg.Flags,
		logger: logger.With(slog.String("component", "app.QuoteService")),
	}
}

// RandomQuote draws one quote uniformly at random from the catalog.
// Every call is an independent draw; the service adds no memory of
// previous draws.
func (s *QuoteService) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	logger := s.requestLogger(ctx)

	quote, err := s.source.RandomQuote(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to draw random quote",
			slog.Any("error", err),
		)

		return nil, err
	}

	if s.flags != nil && s.flags.IsEnabled(ctx, flagLogQuoteContent, false) {
		logger.InfoContext(ctx, "served random quote",
			slog.String("quote_id", quote.ID),
			slog.String("content", quote.Content),
		)
	} else {
		logger.InfoContext(ctx, "served random quote",
			slog.String("quote_id", quote.ID),
		)
	}

	return quote, nil
}

// QuoteByID retrieves a specific quote by its identifier.
func (s *QuoteService) QuoteByID(ctx context.Context, id string) (*domain.Quote, error) {
	logger := s.requestLogger(ctx)

	if id == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}

	quote, err := s.source.QuoteByID(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "failed to fetch quote",
			slog.String("quote_id", id),
			slog.Any("error", err),
		)

		return nil, err
	}

	return quote, nil
}

// ListQuotes returns the full catalog in display order.
// Pagination over the list is a transport concern handled by the HTTP layer.
func (s *QuoteService) ListQuotes(ctx context.Context) ([]domain.Quote, error) {
	quotes, err := s.source.Quotes(ctx)
	if err != nil {
		s.requestLogger(ctx).ErrorContext(ctx, "failed to list quotes",
			slog.Any("error", err),
		)

		return nil, err
	}

	return quotes, nil
}

// requestLogger returns the request-scoped logger carried in the context,
// falling back to the service's own logger for non-HTTP callers.
func (s *QuoteService) requestLogger(ctx context.Context) *slog.Logger {
	logger := logging.FromContext(ctx)
	if logger == nil {
		return s.logger
	}

	return logger
}
