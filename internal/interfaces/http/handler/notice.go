package handler

import (
	"github.com/gin-gonic/gin"

	complianceapp "github.com/propertyops/backend/internal/application/compliance"
)

// NoticeHandler handles city notice API endpoints
type NoticeHandler struct {
	BaseHandler
	notices *complianceapp.NoticeService
}

// NewNoticeHandler creates a new NoticeHandler
func NewNoticeHandler(notices *complianceapp.NoticeService) *NoticeHandler {
	return &NoticeHandler{notices: notices}
}

// Create godoc
// @ID           createNotice
// @Summary      Record a city notice
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        request body compliance.CreateNoticeRequest true "Notice creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /notices [post]
func (h *NoticeHandler) Create(c *gin.Context) {
	var req complianceapp.CreateNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	notice, err := h.notices.CreateNotice(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, notice)
}

// Get godoc
// @ID           getNotice
// @Summary      Get a notice by ID
// @Tags         notices
// @Produce      json
// @Param        id path string true "Notice ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /notices/{id} [get]
func (h *NoticeHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notice ID format")
		return
	}

	notice, err := h.notices.GetNotice(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notice)
}

// List godoc
// @ID           listNotices
// @Summary      List notices
// @Tags         notices
// @Produce      json
// @Param        property_id query string false "Filter by property"
// @Param        status      query string false "Filter by status"
// @Param        severity    query string false "Filter by severity"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /notices [get]
func (h *NoticeHandler) List(c *gin.Context) {
	var filter complianceapp.NoticeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	notices, total, err := h.notices.ListNotices(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, notices, total, filter.Page, filter.PageSize)
}

// Transition godoc
// @ID           transitionNotice
// @Summary      Move a notice through its workflow
// @Tags         notices
// @Accept       json
// @Produce      json
// @Param        id path string true "Notice ID"
// @Param        request body compliance.TransitionNoticeRequest true "Target status"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /notices/{id}/transition [post]
func (h *NoticeHandler) Transition(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notice ID format")
		return
	}

	var req complianceapp.TransitionNoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	notice, err := h.notices.TransitionNotice(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notice)
}

// Delete godoc
// @ID           deleteNotice
// @Summary      Delete a notice
// @Tags         notices
// @Param        id path string true "Notice ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /notices/{id} [delete]
func (h *NoticeHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid notice ID format")
		return
	}

	if err := h.notices.DeleteNotice(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
