package handlers

import (
	"context"
	"net/http"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	portssvc "github.com/SscSPs/credit_notes_app/internal/core/ports/services"
	"github.com/SscSPs/credit_notes_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// reportingHandler serves balance reports, picker lookups and the audit trail.
type reportingHandler struct {
	balanceService portssvc.BalanceSvcFacade
	auditService   portssvc.AuditSvc
	caches         *ReadCaches
}

func registerReportingRoutes(rg *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade, auditService portssvc.AuditSvc, caches *ReadCaches) {
	h := &reportingHandler{balanceService: balanceService, auditService: auditService, caches: caches}

	rg.GET("/balances", h.queryBalances)
	rg.GET("/balances/summary", h.dashboardSummary)
	rg.GET("/balances/by-section", h.sectionBalances)
	rg.GET("/allocations/eligible", h.eligibleAllocations)
	rg.GET("/filters", h.filterOptions)
	rg.GET("/audit", h.listAudit)
}

// queryBalances godoc
// @Summary Query allocation balances
// @Tags reports
// @Produce  json
// @Param   noteID query string false "Note ID"
// @Param   sectionID query string false "Section ID"
// @Param   program query string false "Program"
// @Param   expenseNature query string false "Expense nature"
// @Param   status query string false "ACTIVE, DEPLETED, EXPIRED or CANCELLED"
// @Param   expiringWithinDays query int false "Only active allocations expiring within this many days"
// @Success 200 {array} domain.BalanceRow
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /balances [get]
func (h *reportingHandler) queryBalances(c *gin.Context) {
	var params dto.BalanceQueryParams
	if !bindQuery(c, &params, "QueryBalances") {
		return
	}
	rows, err := h.balanceService.QueryBalances(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to query balances")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// dashboardSummary godoc
// @Summary Aggregate balances
// @Description Total allocated, total balance, total used and counts per status over the filtered allocations.
// @Tags reports
// @Produce  json
// @Param   sectionID query string false "Section ID"
// @Param   program query string false "Program"
// @Param   expenseNature query string false "Expense nature"
// @Param   status query string false "ACTIVE, DEPLETED, EXPIRED or CANCELLED"
// @Success 200 {object} domain.DashboardSummary
// @Security BearerAuth
// @Router /balances/summary [get]
func (h *reportingHandler) dashboardSummary(c *gin.Context) {
	var params dto.BalanceQueryParams
	if !bindQuery(c, &params, "DashboardSummary") {
		return
	}
	summary, err := h.balanceService.DashboardSummary(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to build dashboard summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// sectionBalances godoc
// @Summary Balances per section
// @Description Allocated, used and balance summed per section over the filtered allocations.
// @Tags reports
// @Produce  json
// @Param   noteID query string false "Note ID"
// @Param   program query string false "Program"
// @Param   expenseNature query string false "Expense nature"
// @Param   status query string false "ACTIVE, DEPLETED, EXPIRED or CANCELLED"
// @Param   expiringWithinDays query int false "Only active allocations expiring within this many days"
// @Success 200 {array} domain.SectionBalance
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /balances/by-section [get]
func (h *reportingHandler) sectionBalances(c *gin.Context) {
	var params dto.BalanceQueryParams
	if !bindQuery(c, &params, "SectionBalances") {
		return
	}
	sections, err := h.balanceService.SectionBalances(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to aggregate balances by section")
		return
	}
	c.JSON(http.StatusOK, sections)
}

// eligibleAllocations godoc
// @Summary List allocations open for commitments
// @Tags reports
// @Produce  json
// @Success 200 {array} domain.BalanceRow
// @Security BearerAuth
// @Router /allocations/eligible [get]
func (h *reportingHandler) eligibleAllocations(c *gin.Context) {
	rows, err := h.balanceService.ListEligibleAllocations(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list eligible allocations")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// filterOptions godoc
// @Summary Distinct classification values
// @Tags reports
// @Produce  json
// @Param   program query string false "Narrow expense natures to this program"
// @Success 200 {object} domain.FilterOptions
// @Security BearerAuth
// @Router /filters [get]
func (h *reportingHandler) filterOptions(c *gin.Context) {
	program := c.Query("program")
	opts, err := h.caches.Filters.Get(c.Request.Context(), "program:"+program, func(ctx context.Context) (*domain.FilterOptions, error) {
		return h.balanceService.FilterOptions(ctx, program)
	})
	if err != nil {
		respondError(c, err, "Failed to list filter options")
		return
	}
	c.JSON(http.StatusOK, opts)
}

// listAudit godoc
// @Summary Recent audit entries
// @Tags audit
// @Produce  json
// @Param   limit query int false "Maximum entries" default(50)
// @Param   cursor query string false "NextCursor of the previous page"
// @Success 200 {object} domain.AuditPage
// @Failure 400 {object} map[string]string "Invalid limit or cursor"
// @Security BearerAuth
// @Router /audit [get]
func (h *reportingHandler) listAudit(c *gin.Context) {
	var params dto.ListAuditParams
	if !bindQuery(c, &params, "ListAudit") {
		return
	}
	page, err := h.auditService.ListRecent(c.Request.Context(), params.Limit, params.Cursor)
	if err != nil {
		respondError(c, err, "Failed to list audit entries")
		return
	}
	c.JSON(http.StatusOK, page)
}
