package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type sectionHandler struct {
	sectionService portssvc.SectionSvcFacade
	caches         *ReadCaches
}

func registerSectionRoutes(rg *gin.RouterGroup, sectionService portssvc.SectionSvcFacade, caches *ReadCaches) {
	h := &sectionHandler{sectionService: sectionService, caches: caches}

	sections := rg.Group("/sections")
	{
		sections.GET("", h.listSections)
		sections.POST("", h.createSection)
		sections.DELETE("/:sectionID", h.deleteSection)
	}
}

// listSections godoc
// @Summary List sections
// @Tags sections
// @Produce  json
// @Success 200 {array} domain.Section
// @Security BearerAuth
// @Router /sections [get]
func (h *sectionHandler) listSections(c *gin.Context) {
	sections, err := h.caches.Sections.Get(c.Request.Context(), "all", func(ctx context.Context) ([]domain.Section, error) {
		return h.sectionService.ListSections(ctx)
	})
	if err != nil {
		respondError(c, err, "Failed to list sections")
		return
	}
	if sections == nil {
		sections = []domain.Section{}
	}
	c.JSON(http.StatusOK, sections)
}

// createSection godoc
// @Summary Register a section
// @Tags sections
// @Accept  json
// @Produce  json
// @Param   section body dto.CreateSectionRequest true "Section name"
// @Success 201 {object} domain.Section
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Section name already exists"
// @Security BearerAuth
// @Router /sections [post]
func (h *sectionHandler) createSection(c *gin.Context) {
	var req dto.CreateSectionRequest
	if !bindJSON(c, &req, "CreateSection") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	section, err := h.sectionService.CreateSection(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create section")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Section created", slog.String("section_id", section.SectionID))
	c.JSON(http.StatusCreated, section)
}

// deleteSection godoc
// @Summary Delete a section
// @Description Sections still referenced by allocations cannot be deleted.
// @Tags sections
// @Param   sectionID path string true "Section ID"
// @Success 204
// @Failure 400 {object} map[string]string "Section is still allocated"
// @Failure 404 {object} map[string]string "Section not found"
// @Security BearerAuth
// @Router /sections/{sectionID} [delete]
func (h *sectionHandler) deleteSection(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.sectionService.DeleteSection(c.Request.Context(), c.Param("sectionID"), userID); err != nil {
		respondError(c, err, "Failed to delete section")
		return
	}
	c.Status(http.StatusNoContent)
}
