package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"

	"github.com/jsamuelsen/quotepage/internal/domain"
	"github.com/jsamuelsen/quotepage/internal/ports"
)

// defaultWarmUpWorkers bounds concurrent template renders during warm-up.
const defaultWarmUpWorkers = 4

// PageData is the view model the quote page template consumes.
type PageData struct {
	Title   string
	Message string
}

// WarmUpConfig describes the serving path to prove out at startup.
type WarmUpConfig struct {
	// Source provides the catalog to render. Required.
	Source ports.QuoteSource

	// Renderer renders the page template. Required.
	Renderer ports.PageRenderer

	// Template is the page template name. Required.
	Template string

	// Title is the page title passed to the template.
	Title string

	// Workers bounds render concurrency. Defaults to defaultWarmUpWorkers.
	Workers int
}

// renderedPage pairs a quote with its rendered page for verification.
type renderedPage struct {
	quote domain.Quote
	html  []byte
}

// WarmUp proves the full serving path before the server ever binds:
// every catalog quote is rendered through the page template, and each
// page is verified to contain its quote. A broken template or a quote
// the template cannot carry fails startup instead of the first request.
//
// Returns the number of pages rendered.
func WarmUp(ctx context.Context, exec *Executor, cfg WarmUpConfig) (int, error) {
	op := Operation[WarmUpConfig, []renderedPage, []renderedPage, int]{
		Name:     "page-warmup",
		Validate: validateWarmUp,
		Perform:  renderAllQuotes,
		Verify:   verifyRenderedPages,
		Respond: func(_ context.Context, _ WarmUpConfig, verified []renderedPage) (int, error) {
			return len(verified), nil
		},
	}

	return Execute(ctx, exec, op, cfg)
}

// validateWarmUp checks the wiring before any rendering happens.
func validateWarmUp(_ context.Context, cfg WarmUpConfig) error {
	if cfg.Source == nil {
		return errors.New("quote source is required")
	}

	if cfg.Renderer == nil {
		return errors.New("page renderer is required")
	}

	if cfg.Template == "" {
		return errors.New("template name is required")
	}

	return nil
}

// renderAllQuotes renders every catalog quote with bounded concurrency.
func renderAllQuotes(ctx context.Context, cfg WarmUpConfig) ([]renderedPage, error) {
	quotes, err := cfg.Source.Quotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	if len(quotes) == 0 {
		return nil, errors.New("catalog returned no quotes")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWarmUpWorkers
	}

	fns := make([]func(context.Context) (renderedPage, error), len(quotes))
	for i, quote := range quotes {
		fns[i] = func(_ context.Context) (renderedPage, error) {
			html, err := cfg.Renderer.Render(cfg.Template, PageData{
				Title:   cfg.Title,
				Message: quote.Content,
			})
			if err != nil {
				return renderedPage{}, fmt.Errorf("rendering quote %s: %w", quote.ID, err)
			}

			return renderedPage{quote: quote, html: html}, nil
		}
	}

	return ParallelLimit(ctx, workers, fns...)
}

// verifyRenderedPages confirms each page carries its quote.
// Comparison uses the HTML-escaped form since the template escapes text.
func verifyRenderedPages(_ context.Context, _ WarmUpConfig, pages []renderedPage) ([]renderedPage, error) {
	for _, page := range pages {
		escaped := template.HTMLEscapeString(page.quote.Content)
		if !bytes.Contains(page.html, []byte(escaped)) {
			return nil, fmt.Errorf("rendered page missing quote %s", page.quote.ID)
		}
	}

	return pages, nil
}
