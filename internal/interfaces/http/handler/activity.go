package handler

import (
	"github.com/gin-gonic/gin"

	auditapp "github.com/propertyops/backend/internal/application/audit"
)

// ActivityLogHandler exposes the append-only activity log
type ActivityLogHandler struct {
	BaseHandler
	logs *auditapp.QueryService
}

// NewActivityLogHandler creates a new ActivityLogHandler
func NewActivityLogHandler(logs *auditapp.QueryService) *ActivityLogHandler {
	return &ActivityLogHandler{logs: logs}
}

// List godoc
// @ID           listActivity
// @Summary      List activity log entries
// @Description  Entries are returned newest first
// @Tags         activity
// @Produce      json
// @Param        entity_type query string false "Filter by entity type"
// @Param        entity_id   query string false "Filter by entity ID"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /activity [get]
func (h *ActivityLogHandler) List(c *gin.Context) {
	var filter auditapp.ActivityLogListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	entries, total, err := h.logs.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}
