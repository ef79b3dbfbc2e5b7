package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/dto"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/app"
)

// BiographyHandler handles author biography lookup.
type BiographyHandler struct {
	service *app.BiographyService
}

// NewBiographyHandler creates a new biography handler.
func NewBiographyHandler(service *app.BiographyService) *BiographyHandler {
	return &BiographyHandler{
		service: service,
	}
}

// Lookup handles GET /api/authors/:name
// Always answers 200: a lookup that finds nothing, or even one that
// fails upstream, is shaped as found=false so the browser can render a
// graceful empty state instead of an error page.
//
// @Summary Look up an author biography
// @Description Resolves encyclopedia summary content for an author name
// @Tags authors
// @Produce json
// @Param name path string true "Author name"
// @Success 200 {object} dto.BiographyResponse
// @Router /api/authors/{name} [get]
func (h *BiographyHandler) Lookup(c *gin.Context) {
	result := h.service.Lookup(c.Request.Context(), c.Param("name"))

	c.JSON(http.StatusOK, dto.NewBiographyResponse(result))
}

// RegisterBiographyRoutes registers author routes on the given router group.
func (h *BiographyHandler) RegisterBiographyRoutes(rg *gin.RouterGroup) {
	rg.GET("/authors/:name", h.Lookup)
}
