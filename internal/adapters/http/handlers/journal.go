package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/adapters/http/dto"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/app"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/domain"
	"github.com/Raafay-Qureshi/interactive-quote-journal/internal/ports"
)

// JournalHandler handles journal CRUD endpoints.
type JournalHandler struct {
	service *app.JournalService
}

// NewJournalHandler creates a new journal handler.
func NewJournalHandler(service *app.JournalService) *JournalHandler {
	return &JournalHandler{
		service: service,
	}
}

// List handles GET /api/journal
// Returns saved entries newest first as a bare JSON array. Optional
// cursor/limit query parameters page through long journals; the cursor
// for the next page is exposed in X-Next-Cursor.
//
// @Summary List journal entries
// @Description Lists saved quotes, newest first
// @Tags journal
// @Produce json
// @Param cursor query string false "Opaque position from a previous X-Next-Cursor"
// @Param limit query int false "Entries per page (1-100)"
// @Success 200 {array} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/journal [get]
func (h *JournalHandler) List(c *gin.Context) {
	var page dto.PaginationRequest

	if err := dto.BindQueryAndValidate(c, &page); err != nil {
		dto.RespondWithErrorCode(c, dto.ErrorCodeValidation, "invalid pagination parameters")
		return
	}

	query := ports.JournalQuery{Limit: page.GetLimit()}

	cursor, err := page.DecodeCursor()
	if err == nil {
		query.AfterID = cursor.ID
		query.AfterSavedAt = cursor.SavedAt
	} else if err != dto.ErrNoCursor {
		dto.RespondWithErrorCode(c, dto.ErrorCodeValidation, "invalid cursor")
		return
	}

	entries, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		respondJournalError(c, err)
		return
	}

	if len(entries) == query.Limit {
		last := entries[len(entries)-1]
		c.Header("X-Next-Cursor", dto.EncodeCursor(&dto.CursorData{
			SavedAt: last.SavedAt.Format(dto.CursorTimeLayout),
			ID:      last.ID,
		}))
	}

	resp := make([]dto.JournalEntryResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, dto.NewJournalEntryResponse(entry))
	}

	c.JSON(http.StatusOK, resp)
}

// Save handles POST /api/journal
// Persists a quote. Any client-supplied savedAt is ignored; the store
// stamps the timestamp server-side.
//
// @Summary Save a quote to the journal
// @Tags journal
// @Accept json
// @Produce json
// @Param request body dto.JournalSaveRequest true "Quote to save"
// @Success 201 {object} dto.JournalSaveResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/journal [post]
func (h *JournalHandler) Save(c *gin.Context) {
	var req dto.JournalSaveRequest

	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.RespondWithErrorDetails(c, dto.ErrorCodeValidation,
			"request validation failed", validationDetails(err))
		return
	}

	entry, err := h.service.Save(c.Request.Context(), domain.Quote{
		Text:   req.Quote,
		Author: req.Author,
	})
	if err != nil {
		respondJournalError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.JournalSaveResponse{
		Message:    "quote saved to journal",
		InsertedID: entry.ID,
	})
}

// Delete handles DELETE /api/journal/:id
// Malformed identifiers are rejected with 400 before the store is
// touched; a well-formed identifier with no matching entry is 404.
//
// @Summary Delete a journal entry
// @Tags journal
// @Produce json
// @Param id path string true "Entry identifier (24-character hex)"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/journal/{id} [delete]
func (h *JournalHandler) Delete(c *gin.Context) {
	if err := h.service.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondJournalError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "journal entry deleted"})
}

// RegisterJournalRoutes registers journal routes on the given router group.
func (h *JournalHandler) RegisterJournalRoutes(rg *gin.RouterGroup) {
	journal := rg.Group("/journal")
	journal.GET("", h.List)
	journal.POST("", h.Save)
	journal.DELETE("/:id", h.Delete)
}

// respondJournalError shapes store failures as {error, details} so the
// browser can show what went wrong with the journal itself.
func respondJournalError(c *gin.Context, err error) {
	if domain.IsUnavailable(err) {
		dto.RespondWithErrorDetails(c, dto.ErrorCodeInternal,
			"journal operation failed", err.Error())
		return
	}

	dto.HandleError(c, err)
}
