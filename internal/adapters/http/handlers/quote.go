// Package handlers provides HTTP request handlers for the service.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/dto"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/app"
)

// QuoteHandler handles quote retrieval endpoints.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		service: service,
	}
}

// GetQuote handles GET /api/quotes
// Returns a quote through the tiered retrieval chain. This endpoint never
// fails: the static table answers when everything else is down. The tier
// that produced the quote is reported in X-Quote-Source and the current
// cache size in X-Cache-Size.
//
// @Summary Get a quote
// @Description Returns a quote from the provider, the cache, or the static fallback table
// @Tags quotes
// @Produce json
// @Success 200 {object} dto.QuoteResponse
// @Header 200 {string} X-Quote-Source "Retrieval tier that produced the quote"
// @Header 200 {string} X-Cache-Size "Number of quotes currently cached"
// @Router /api/quotes [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, source, cacheSize := h.service.GetQuote(c.Request.Context())

	c.Header("X-Quote-Source", string(source))
	c.Header("X-Cache-Size", strconv.Itoa(cacheSize))
	c.JSON(http.StatusOK, dto.NewQuoteResponse(quote))
}

// RegisterQuoteRoutes registers quote routes on the given router group.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes", h.GetQuote)
}
