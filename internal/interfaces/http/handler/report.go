package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reportapp "github.com/propertyops/backend/internal/application/report"
)

// ReportHandler handles read-only reporting endpoints
type ReportHandler struct {
	BaseHandler
	reports *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// ownerScope parses the optional owner_id query parameter. The second
// return is false when the parameter was present but malformed, in
// which case a 400 has already been written.
func (h *ReportHandler) ownerScope(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("owner_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return nil, false
	}
	return &id, true
}

// RentRoll godoc
// @ID           rentRollReport
// @Summary      Rent roll across occupied properties
// @Tags         reports
// @Produce      json
// @Param        owner_id query string false "Scope to a single owner"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/rent-roll [get]
func (h *ReportHandler) RentRoll(c *gin.Context) {
	ownerID, ok := h.ownerScope(c)
	if !ok {
		return
	}

	rpt, err := h.reports.RentRoll(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// Vacancy godoc
// @ID           vacancyReport
// @Summary      Vacant properties with days-vacant risk banding
// @Tags         reports
// @Produce      json
// @Param        owner_id query string false "Scope to a single owner"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/vacancy [get]
func (h *ReportHandler) Vacancy(c *gin.Context) {
	ownerID, ok := h.ownerScope(c)
	if !ok {
		return
	}

	rpt, err := h.reports.Vacancy(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// PortfolioPnL godoc
// @ID           portfolioPnLReport
// @Summary      Per-property profit and loss over a date window
// @Tags         reports
// @Produce      json
// @Param        owner_id query string false "Scope to a single owner"
// @Param        from     query string false "Window start (RFC 3339), defaults to year start"
// @Param        to       query string false "Window end (RFC 3339), defaults to now"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/pnl [get]
func (h *ReportHandler) PortfolioPnL(c *gin.Context) {
	ownerID, ok := h.ownerScope(c)
	if !ok {
		return
	}

	var window reportapp.WindowRequest
	if err := c.ShouldBindQuery(&window); err != nil {
		h.BindError(c, err)
		return
	}

	rpt, err := h.reports.PortfolioPnL(c.Request.Context(), ownerID, window)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// OwnerPnL godoc
// @ID           ownerPnLReport
// @Summary      Profit and loss grouped by owning entity
// @Tags         reports
// @Produce      json
// @Param        from query string false "Window start (RFC 3339), defaults to year start"
// @Param        to   query string false "Window end (RFC 3339), defaults to now"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/owner-pnl [get]
func (h *ReportHandler) OwnerPnL(c *gin.Context) {
	var window reportapp.WindowRequest
	if err := c.ShouldBindQuery(&window); err != nil {
		h.BindError(c, err)
		return
	}

	rpt, err := h.reports.OwnerPnL(c.Request.Context(), window)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// TaxSummary godoc
// @ID           taxSummaryReport
// @Summary      Tax status rollup per property
// @Tags         reports
// @Produce      json
// @Param        owner_id query string false "Scope to a single owner"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/tax-summary [get]
func (h *ReportHandler) TaxSummary(c *gin.Context) {
	ownerID, ok := h.ownerScope(c)
	if !ok {
		return
	}

	rows, err := h.reports.TaxSummary(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// OutstandingNotices godoc
// @ID           outstandingNoticesReport
// @Summary      Open city notices ordered by deadline urgency
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/notices [get]
func (h *ReportHandler) OutstandingNotices(c *gin.Context) {
	rpt, err := h.reports.OutstandingNotices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// PmPerformance godoc
// @ID           pmPerformanceReport
// @Summary      Property manager bill and task throughput
// @Tags         reports
// @Produce      json
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/pm-performance [get]
func (h *ReportHandler) PmPerformance(c *gin.Context) {
	rpt, err := h.reports.PmPerformance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}

// Dashboard godoc
// @ID           dashboardReport
// @Summary      Portfolio health snapshot
// @Tags         reports
// @Produce      json
// @Param        owner_id query string false "Scope to a single owner"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *gin.Context) {
	ownerID, ok := h.ownerScope(c)
	if !ok {
		return
	}

	rpt, err := h.reports.Dashboard(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rpt)
}
