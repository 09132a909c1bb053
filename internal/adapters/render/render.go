// Package render provides HTML page rendering from embedded templates.
// Templates are compiled into the binary and parsed once at startup, so a
// broken template fails the process before it ever serves traffic.
package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// templateExt maps logical template names to embedded asset files.
// Callers render "index", the asset is templates/index.tmpl.
const templateExt = ".tmpl"

// Config configures an Engine instance.
type Config struct {
	// Logger is an optional logger. If nil, a default logger is used.
	Logger *slog.Logger
}

// Engine renders named HTML templates to bytes.
// Rendering failures are infrastructure errors, never domain errors: a
// page that cannot render is a server fault, not a missing resource.
type Engine struct {
	templates *template.Template
	logger    *slog.Logger
}

// New parses all embedded templates and returns a ready Engine.
func New(cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = &Config{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "render.Engine"))

	templates, err := template.ParseFS(templateFS, "templates/*"+templateExt)
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	for _, t := range templates.Templates() {
		logger.Debug("template loaded", slog.String("template", t.Name()))
	}

	return &Engine{
		templates: templates,
		logger:    logger,
	}, nil
}

// Render executes the named template with data and returns the HTML bytes.
// Output is buffered so a mid-execution failure never leaks a partial page
// to the caller.
func (e *Engine) Render(name string, data any) ([]byte, error) {
	tmpl := e.templates.Lookup(name + templateExt)
	if tmpl == nil {
		return nil, fmt.Errorf("template %q not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template %q: %w", name, err)
	}

	return buf.Bytes(), nil
}

// Name identifies this component in health check responses.
func (e *Engine) Name() string {
	return "renderer"
}

// Check reports whether the engine has templates to render.
func (e *Engine) Check(_ context.Context) error {
	if len(e.templates.Templates()) == 0 {
		return errors.New("no templates loaded")
	}

	return nil
}
