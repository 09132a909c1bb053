// Package catalog provides the in-memory quote source.
// It adapts the immutable domain catalog to the ports.QuoteSource interface
// and is the only place random selection happens.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen/quotepage/internal/domain"
)

// instrumentationName is used for the OpenTelemetry meter.
const instrumentationName = "github.com/jsamuelsen/quotepage/internal/adapters/catalog"

// Config configures a Source instance.
type Config struct {
	// Catalog is the immutable quote catalog to serve from. Required.
	Catalog *domain.Catalog

	// Rand returns a uniform random int in [0, n). Defaults to rand.IntN.
	// Override in tests for deterministic draws.
	Rand func(n int) int

	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Source serves quotes from an in-memory catalog.
// All methods are safe for concurrent use: the catalog is immutable and
// rand.IntN is safe for concurrent callers.
type Source struct {
	catalog *domain.Catalog
	randInt func(n int) int
	logger  *slog.Logger

	draws metric.Int64Counter
}

// New creates a quote source backed by the given catalog.
func New(cfg *Config) (*Source, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	if cfg.Catalog == nil {
		return nil, errors.New("catalog is required")
	}

	randInt := cfg.Rand
	if randInt == nil {
		randInt = rand.IntN //nolint:gosec // No need for crypto-grade randomness
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "catalog.Source"))

	meter := otel.Meter(instrumentationName)

	draws, err := meter.Int64Counter(
		"quotes.draw.total",
		metric.WithDescription("Total number of random quote draws"),
	)
	if err != nil {
		return nil, err
	}

	return &Source{
		catalog: cfg.Catalog,
		randInt: randInt,
		logger:  logger,
		draws:   draws,
	}, nil
}

// RandomQuote returns one quote drawn uniformly at random.
// Each call is an independent draw over the full catalog.
func (s *Source) RandomQuote(ctx context.Context) (*domain.Quote, error) {
	q := s.catalog.Quote(s.randInt(s.catalog.Len()))

	s.draws.Add(ctx, 1, metric.WithAttributes(
		attribute.String("quote.id", q.ID),
	))
	s.logger.DebugContext(ctx, "quote drawn", slog.String("quote_id", q.ID))

	return &q, nil
}

// QuoteByID retrieves a quote by its catalog position identifier.
func (s *Source) QuoteByID(ctx context.Context, id string) (*domain.Quote, error) {
	q, ok := s.catalog.ByID(id)
	if !ok {
		return nil, domain.NewNotFoundError("quote", id)
	}

	return &q, nil
}

// Quotes returns every quote in catalog order.
func (s *Source) Quotes(ctx context.Context) ([]domain.Quote, error) {
	return s.catalog.All(), nil
}

// Name identifies this component in health check responses.
func (s *Source) Name() string {
	return "catalog"
}

// Check reports whether the source can serve quotes.
// The catalog is non-empty by construction, so this only guards against
// a miswired source.
func (s *Source) Check(_ context.Context) error {
	if s.catalog.Len() == 0 {
		return errors.New("catalog is empty")
	}

	return nil
}
