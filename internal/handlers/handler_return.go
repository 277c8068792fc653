package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/gin-gonic/gin"
)

type returnHandler struct {
	returnService portssvc.ReturnSvcFacade
}

func registerReturnRoutes(rg *gin.RouterGroup, returnService portssvc.ReturnSvcFacade) {
	h := &returnHandler{returnService: returnService}

	returns := rg.Group("/returns")
	{
		returns.POST("", h.createReturn)
		returns.DELETE("/:returnID", h.deleteReturn)
	}
}

// createReturn godoc
// @Summary Return funds of an allocation to the issuer
// @Tags returns
// @Accept  json
// @Produce  json
// @Param   return body dto.CreateReturnRequest true "Return details"
// @Success 201 {object} domain.Return
// @Failure 400 {object} map[string]string "Invalid input or allocation not under the note"
// @Failure 404 {object} map[string]string "Allocation not found"
// @Failure 422 {object} dto.InsufficientBalanceResponse
// @Security BearerAuth
// @Router /returns [post]
func (h *returnHandler) createReturn(c *gin.Context) {
	var req dto.CreateReturnRequest
	if !bindJSON(c, &req, "CreateReturn") {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err, "Failed to create return")
		return
	}
	c.JSON(http.StatusCreated, ret)
}

// deleteReturn godoc
// @Summary Delete a return
// @Tags returns
// @Param   returnID path string true "Return ID"
// @Success 204
// @Failure 404 {object} map[string]string "Return not found"
// @Security BearerAuth
// @Router /returns/{returnID} [delete]
func (h *returnHandler) deleteReturn(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	if err := h.returnService.DeleteReturn(c.Request.Context(), c.Param("returnID"), userID); err != nil {
		respondError(c, err, "Failed to delete return")
		return
	}
	c.Status(http.StatusNoContent)
}
