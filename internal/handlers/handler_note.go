package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// noteHandler handles HTTP requests related to credit notes.
type noteHandler struct {
	noteService    portssvc.CreditNoteSvcFacade
	balanceService portssvc.BalanceSvcFacade
}

func newNoteHandler(ns portssvc.CreditNoteSvcFacade, bs portssvc.BalanceSvcFacade) *noteHandler {
	return &noteHandler{noteService: ns, balanceService: bs}
}

func registerNoteRoutes(rg *gin.RouterGroup, noteService portssvc.CreditNoteSvcFacade, balanceService portssvc.BalanceSvcFacade) {
	h := newNoteHandler(noteService, balanceService)

	notes := rg.Group("/notes")
	{
		notes.GET("", h.listNotes)
		notes.POST("", h.createNote)
		notes.GET("/:noteID", h.getNote)
		notes.PUT("/:noteID", h.updateNote)
		notes.DELETE("/:noteID", h.deleteNote)
		notes.POST("/:noteID/cancel", h.cancelNote)
		notes.POST("/:noteID/reinstate", h.reinstateNote)
		notes.GET("/:noteID/statement", h.getStatement)
	}
}

// createNote godoc
// @Summary Create a credit note
// @Description Creates a note and its allocation set in one transaction. The allocated sum may not exceed the total value.
// @Tags notes
// @Accept  json
// @Produce  json
// @Param   note body dto.SaveCreditNoteRequest true "Note header and allocation rows"
// @Success 201 {object} dto.CreditNoteDetailResponse
// @Failure 400 {object} map[string]string "Invalid input or allocation exceeds total"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Section not found"
// @Failure 409 {object} map[string]string "Note number already exists"
// @Failure 500 {object} map[string]string "Failed to save note"
// @Security BearerAuth
// @Router /notes [post]
func (h *noteHandler) createNote(c *gin.Context) {
	h.saveNote(c, "", http.StatusCreated)
}

// updateNote godoc
// @Summary Edit a credit note
// @Description Overwrites the header and replaces the allocation set. Sections that carry debits cannot be dropped or reduced below them.
// @Tags notes
// @Accept  json
// @Produce  json
// @Param   noteID path string true "Note ID"
// @Param   note body dto.SaveCreditNoteRequest true "Note header and allocation rows"
// @Success 200 {object} dto.CreditNoteDetailResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Note or section not found"
// @Failure 409 {object} map[string]string "Note number already exists"
// @Failure 500 {object} map[string]string "Failed to save note"
// @Security BearerAuth
// @Router /notes/{noteID} [put]
func (h *noteHandler) updateNote(c *gin.Context) {
	h.saveNote(c, c.Param("noteID"), http.StatusOK)
}

func (h *noteHandler) saveNote(c *gin.Context, noteID string, status int) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCreditNoteRequest
	if !bindJSON(c, &req, "SaveCreditNote") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to save credit note",
		slog.String("note_id", noteID),
		slog.String("number", req.Number),
		slog.Int("rows", len(req.Allocations)))

	note, allocations, err := h.noteService.CreateOrUpdateNote(c.Request.Context(), noteID, req, userID)
	if err != nil {
		respondError(c, err, "Failed to save credit note")
		return
	}

	logger.Info("Credit note saved", slog.String("note_id", note.NoteID))
	c.JSON(status, dto.ToCreditNoteDetailResponse(note, allocations))
}

// getNote godoc
// @Summary Get a credit note
// @Tags notes
// @Produce  json
// @Param   noteID path string true "Note ID"
// @Success 200 {object} dto.CreditNoteDetailResponse
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{noteID} [get]
func (h *noteHandler) getNote(c *gin.Context) {
	note, allocations, err := h.noteService.GetNote(c.Request.Context(), c.Param("noteID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve credit note")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditNoteDetailResponse(note, allocations))
}

// listNotes godoc
// @Summary List credit notes
// @Description Lists notes with their allocated total, balance and derived status.
// @Tags notes
// @Produce  json
// @Param   q query string false "Number search"
// @Param   program query string false "Program"
// @Param   expenseNature query string false "Expense nature"
// @Param   status query string false "ACTIVE, DEPLETED, EXPIRED or CANCELLED"
// @Param   receivedFrom query string false "Earliest receipt date (YYYY-MM-DD)"
// @Param   receivedTo query string false "Latest receipt date (YYYY-MM-DD)"
// @Success 200 {array} dto.NoteSummaryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /notes [get]
func (h *noteHandler) listNotes(c *gin.Context) {
	var params dto.ListNotesParams
	if !bindQuery(c, &params, "ListNotes") {
		return
	}

	summaries, err := h.balanceService.ListNotes(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list credit notes")
		return
	}
	c.JSON(http.StatusOK, dto.ToNoteSummaryResponses(summaries))
}

// deleteNote godoc
// @Summary Delete a credit note
// @Description Deletes the note with its allocations, commitments and returns.
// @Tags notes
// @Param   noteID path string true "Note ID"
// @Success 204
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{noteID} [delete]
func (h *noteHandler) deleteNote(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	noteID := c.Param("noteID")
	if err := h.noteService.DeleteNote(c.Request.Context(), noteID, userID); err != nil {
		respondError(c, err, "Failed to delete credit note")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Credit note deleted", slog.String("note_id", noteID))
	c.Status(http.StatusNoContent)
}

// cancelNote godoc
// @Summary Cancel a credit note
// @Tags notes
// @Produce  json
// @Param   noteID path string true "Note ID"
// @Success 200 {object} dto.CreditNoteResponse
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{noteID}/cancel [post]
func (h *noteHandler) cancelNote(c *gin.Context) {
	h.setCancelled(c, true)
}

// reinstateNote godoc
// @Summary Reinstate a cancelled credit note
// @Tags notes
// @Produce  json
// @Param   noteID path string true "Note ID"
// @Success 200 {object} dto.CreditNoteResponse
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{noteID}/reinstate [post]
func (h *noteHandler) reinstateNote(c *gin.Context) {
	h.setCancelled(c, false)
}

func (h *noteHandler) setCancelled(c *gin.Context, cancelled bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	note, err := h.noteService.SetNoteCancelled(c.Request.Context(), c.Param("noteID"), cancelled, userID)
	if err != nil {
		respondError(c, err, "Failed to update credit note")
		return
	}
	c.JSON(http.StatusOK, dto.ToCreditNoteResponse(note))
}

// getStatement godoc
// @Summary Get the statement of a credit note
// @Description Returns the note with its balance, status, allocations, commitments and returns.
// @Tags notes
// @Produce  json
// @Param   noteID path string true "Note ID"
// @Success 200 {object} domain.NoteStatement
// @Failure 404 {object} map[string]string "Note not found"
// @Security BearerAuth
// @Router /notes/{noteID}/statement [get]
func (h *noteHandler) getStatement(c *gin.Context) {
	statement, err := h.balanceService.QueryNoteStatement(c.Request.Context(), c.Param("noteID"))
	if err != nil {
		respondError(c, err, "Failed to build note statement")
		return
	}
	c.JSON(http.StatusOK, statement)
}
