package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/SscSPs/credit_notes_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// commitmentHandler handles HTTP requests related to commitments.
type commitmentHandler struct {
	commitmentService portssvc.CommitmentSvcFacade
}

func registerCommitmentRoutes(rg *gin.RouterGroup, commitmentService portssvc.CommitmentSvcFacade) {
	h := &commitmentHandler{commitmentService: commitmentService}

	commitments := rg.Group("/commitments")
	{
		commitments.GET("", h.listCommitments)
		commitments.POST("", h.createCommitment)
		commitments.PUT("/:commitmentID", h.updateCommitment)
		commitments.DELETE("/:commitmentID", h.deleteCommitment)
	}
}

// createCommitment godoc
// @Summary Register a commitment
// @Description Debits an allocation. Rejected when the value exceeds the allocation balance.
// @Tags commitments
// @Accept  json
// @Produce  json
// @Param   commitment body dto.SaveCommitmentRequest true "Commitment details"
// @Success 201 {object} domain.Commitment
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 409 {object} map[string]string "Commitment number already exists"
// @Failure 422 {object} dto.InsufficientBalanceResponse
// @Security BearerAuth
// @Router /commitments [post]
func (h *commitmentHandler) createCommitment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCommitmentRequest
	if !bindJSON(c, &req, "CreateCommitment") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	logger.Info("Received request to create commitment",
		slog.String("allocation_id", req.AllocationID),
		slog.String("number", req.Number),
		slog.String("value", req.Value.String()))

	commitment, err := h.commitmentService.CreateCommitment(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create commitment")
		return
	}
	c.JSON(http.StatusCreated, commitment)
}

// updateCommitment godoc
// @Summary Edit a commitment
// @Tags commitments
// @Accept  json
// @Produce  json
// @Param   commitmentID path string true "Commitment ID"
// @Param   commitment body dto.SaveCommitmentRequest true "Commitment details"
// @Success 200 {object} domain.Commitment
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Commitment or allocation not found"
// @Failure 409 {object} map[string]string "Commitment number already exists"
// @Failure 422 {object} dto.InsufficientBalanceResponse
// @Security BearerAuth
// @Router /commitments/{commitmentID} [put]
func (h *commitmentHandler) updateCommitment(c *gin.Context) {
	var req dto.SaveCommitmentRequest
	if !bindJSON(c, &req, "UpdateCommitment") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	commitment, err := h.commitmentService.UpdateCommitment(c.Request.Context(), c.Param("commitmentID"), req, userID)
	if err != nil {
		respondError(c, err, "Failed to update commitment")
		return
	}
	c.JSON(http.StatusOK, commitment)
}

// deleteCommitment godoc
// @Summary Delete a commitment
// @Tags commitments
// @Param   commitmentID path string true "Commitment ID"
// @Success 204
// @Failure 404 {object} map[string]string "Commitment not found"
// @Security BearerAuth
// @Router /commitments/{commitmentID} [delete]
func (h *commitmentHandler) deleteCommitment(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.commitmentService.DeleteCommitment(c.Request.Context(), c.Param("commitmentID"), userID); err != nil {
		respondError(c, err, "Failed to delete commitment")
		return
	}
	c.Status(http.StatusNoContent)
}

// listCommitments godoc
// @Summary List commitments
// @Tags commitments
// @Produce  json
// @Param   q query string false "Number search"
// @Param   noteID query string false "Note ID"
// @Param   sectionID query string false "Section ID"
// @Param   allocationID query string false "Allocation ID"
// @Param   program query string false "Program"
// @Param   expenseNature query string false "Expense nature"
// @Success 200 {array} domain.CommitmentDetail
// @Security BearerAuth
// @Router /commitments [get]
func (h *commitmentHandler) listCommitments(c *gin.Context) {
	var params dto.ListCommitmentsParams
	if !bindQuery(c, &params, "ListCommitments") {
		return
	}
	details, err := h.commitmentService.ListCommitments(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list commitments")
		return
	}
	c.JSON(http.StatusOK, details)
}
