package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/dto"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/app"
)

// AnalyzeHandler handles the mood analysis endpoint.
type AnalyzeHandler struct {
	service *app.MoodService
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(service *app.MoodService) *AnalyzeHandler {
	return &AnalyzeHandler{
		service: service,
	}
}

// Analyze handles POST /api/analyze
// Classifies quote text into a mood/color pair with a derived theming
// palette. When the analysis service is unreachable the rotation table
// answers instead and X-Fallback: true is set; that is still a 200.
//
// @Summary Analyze the mood of a quote
// @Description Classifies text into a mood and theme color
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Quote text to analyze"
// @Success 200 {object} dto.AnalyzeResponse
// @Header 200 {string} X-Fallback "Set to true when the rotation fallback answered"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /api/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req dto.AnalyzeRequest

	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithErrorDetails(c, dto.ErrorCodeValidation,
			"request validation failed", validationDetails(err))
		return
	}

	result, fallback, err := h.service.Analyze(c.Request.Context(), req.Quote)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	if fallback {
		c.Header("X-Fallback", "true")
	}

	c.JSON(http.StatusOK, dto.NewAnalyzeResponse(result))
}

// RegisterAnalyzeRoutes registers analysis routes on the given router group.
func (h *AnalyzeHandler) RegisterAnalyzeRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.Analyze)
}

// validationDetails flattens binding/validation failures into one
// deterministic details string.
func validationDetails(err error) string {
	fieldErrors := dto.ValidationErrors(err)
	if len(fieldErrors) == 0 {
		return "malformed request body"
	}

	parts := make([]string, 0, len(fieldErrors))
	for field, msg := range fieldErrors {
		parts = append(parts, field+": "+msg)
	}

	sort.Strings(parts)

	return strings.Join(parts, "; ")
}
