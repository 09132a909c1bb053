// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context on operations that may block or carry request scope
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Methods represent business operations, not CRUD operations
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotepage/internal/domain"
)

// QuoteSource provides read access to the quote catalog.
// The catalog behind a source is fixed for the process lifetime; sources
// must be safe for concurrent use without external locking.
type QuoteSource interface {
	// RandomQuote returns one quote drawn uniformly at random from the
	// catalog. Draws are independent: no draw constrains any other.
	RandomQuote(ctx context.Context) (*domain.Quote, error)

	// QuoteByID retrieves a quote by its identifier.
	// Returns domain.ErrNotFound if no quote has that ID.
	QuoteByID(ctx context.Context, id string) (*domain.Quote, error)

	// Quotes returns every quote in catalog order.
	Quotes(ctx context.Context) ([]domain.Quote, error)
}

// PageRenderer renders a named template with the supplied variables into
// bytes ready to be written as a response body. Implementations own the
// template assets; callers never see the templating engine.
//
// Rendering is pure CPU work with no request scope, so Render takes no
// context. A missing template or an execution failure is an error, which
// the HTTP layer surfaces as a 500.
type PageRenderer interface {
	// Render executes the named template with data and returns the result.
	Render(name string, data any) ([]byte, error)
}
