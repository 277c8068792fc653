package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getHealth godoc
// @Summary Liveness check.
// @Tags root
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func getHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "service": "credit-notes"})
}

// registerHealthRoutes registers the unauthenticated liveness check outside /api/v1.
func registerHealthRoutes(r *gin.Engine) {
	r.GET("/health", getHealth)
}
