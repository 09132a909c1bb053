package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotepage/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotepage/internal/app"
	"github.com/jsamuelsen/quotepage/internal/domain"
)

// QuoteHandler handles quote-related HTTP endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// QuoteResponse is the HTTP response structure for a quote.
type QuoteResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// toQuoteResponse converts a domain Quote to an HTTP response.
func toQuoteResponse(q *domain.Quote) *QuoteResponse {
	return &QuoteResponse{
		ID:      q.ID,
		Content: q.Content,
	}
}

// GetRandomQuote handles GET /api/v1/quotes/random
// Returns a uniformly random quote from the catalog.
//
// @Summary Get a random quote
// @Description Draws a uniformly random quote from the catalog
// @Tags quotes
// @Produce json
// @Success 200 {object} QuoteResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/random [get]
func (h *QuoteHandler) GetRandomQuote(c *gin.Context) {
	quote, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// GetQuoteByID handles GET /api/v1/quotes/:id
// Returns a specific quote by its identifier.
//
// @Summary Get a quote by ID
// @Description Fetches a specific quote by its catalog position
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} QuoteResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes/{id} [get]
func (h *QuoteHandler) GetQuoteByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"quote ID is required",
		).WithTraceID(dto.GetTraceID(c)))
		return
	}

	quote, err := h.service.QuoteByID(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(quote))
}

// ListQuotes handles GET /api/v1/quotes
// Returns the catalog in its fixed order, one cursor-paginated page at a time.
//
// @Summary List quotes
// @Description Returns the quote catalog in its fixed order, paginated by cursor
// @Tags quotes
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param cursor query string false "Opaque cursor from a previous page"
// @Success 200 {object} dto.PaginatedResponse[QuoteResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /api/v1/quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.PaginationRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		if dto.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithDetails(
				dto.ErrorCodeValidation,
				"invalid query parameters",
				dto.ValidationErrors(err),
			).WithTraceID(dto.GetTraceID(c)))
			return
		}

		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"invalid query parameters",
		).WithTraceID(dto.GetTraceID(c)))
		return
	}

	cursor, err := req.DecodeCursor()
	if err != nil && !errors.Is(err, dto.ErrNoCursor) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"invalid cursor",
		).WithTraceID(dto.GetTraceID(c)))
		return
	}

	quotes, err := h.service.ListQuotes(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	// Quote IDs are catalog positions, so the cursor's last-seen ID is
	// also the index where the next page starts.
	start := 0
	if cursor != nil {
		pos, convErr := strconv.Atoi(cursor.ID)
		if convErr != nil || pos < 1 || pos > len(quotes) {
			c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.ErrorCodeBadRequest,
				"invalid cursor",
			).WithTraceID(dto.GetTraceID(c)))
			return
		}
		start = pos
	}

	limit := req.GetLimit()

	// Fetch one extra item so the response can tell whether more pages exist.
	end := start + limit + 1
	if end > len(quotes) {
		end = len(quotes)
	}

	window := make([]*QuoteResponse, 0, end-start)
	for i := start; i < end; i++ {
		window = append(window, toQuoteResponse(&quotes[i]))
	}

	resp := dto.NewPaginatedResponse(window, limit, func(q *QuoteResponse) *dto.CursorData {
		return dto.NewCursor(q.ID)
	})

	c.JSON(http.StatusOK, resp)
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.GET("/random", h.GetRandomQuote)
	quotes.GET("/:id", h.GetQuoteByID)
}
