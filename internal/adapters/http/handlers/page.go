package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotepage/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotepage/internal/app"
	"github.com/jsamuelsen/quotepage/internal/ports"
)

// htmlContentType is the Content-Type for rendered pages.
const htmlContentType = "text/html; charset=utf-8"

// PageHandler serves the motivational quote page.
// Each request draws a fresh random quote and renders it into the
// configured HTML template.
type PageHandler struct {
	service  *app.QuoteService
	renderer ports.PageRenderer
	template string
	title    string
}

// NewPageHandler creates a new page handler.
func NewPageHandler(service *app.QuoteService, renderer ports.PageRenderer, template, title string) *PageHandler {
	return &PageHandler{
		service:  service,
		renderer: renderer,
		template: template,
		title:    title,
	}
}

// GetPage handles GET /
// Renders the HTML page with one uniformly random quote.
//
// @Summary Get the quote page
// @Description Renders an HTML page containing one random motivational quote
// @Tags page
// @Produce html
// @Success 200 {string} string "rendered HTML page"
// @Failure 500 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router / [get]
func (h *PageHandler) GetPage(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	page, err := h.renderer.Render(h.template, app.PageData{
		Title:   h.title,
		Message: quote.Content,
	})
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Data(http.StatusOK, htmlContentType, page)
}

// RegisterPageRoutes registers the page route on the given router group.
func (h *PageHandler) RegisterPageRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.GetPage)
}
