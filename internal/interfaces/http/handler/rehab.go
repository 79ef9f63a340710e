package handler

import (
	"github.com/gin-gonic/gin"

	opsapp "github.com/propertyops/backend/internal/application/ops"
)

// RehabHandler handles rehab project API endpoints
type RehabHandler struct {
	BaseHandler
	rehabs *opsapp.RehabService
}

// NewRehabHandler creates a new RehabHandler
func NewRehabHandler(rehabs *opsapp.RehabService) *RehabHandler {
	return &RehabHandler{rehabs: rehabs}
}

// Create godoc
// @ID           createRehab
// @Summary      Create a rehab project
// @Tags         rehabs
// @Accept       json
// @Produce      json
// @Param        request body ops.CreateRehabRequest true "Rehab creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs [post]
func (h *RehabHandler) Create(c *gin.Context) {
	var req opsapp.CreateRehabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rehab, err := h.rehabs.CreateRehab(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rehab)
}

// Get godoc
// @ID           getRehab
// @Summary      Get a rehab project by ID
// @Tags         rehabs
// @Produce      json
// @Param        id path string true "Rehab project ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs/{id} [get]
func (h *RehabHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rehab project ID format")
		return
	}

	rehab, err := h.rehabs.GetRehab(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rehab)
}

// List godoc
// @ID           listRehabs
// @Summary      List rehab projects
// @Tags         rehabs
// @Produce      json
// @Param        property_id query string false "Filter by property"
// @Param        status      query string false "Filter by status"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs [get]
func (h *RehabHandler) List(c *gin.Context) {
	var filter opsapp.RehabListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	rehabs, total, err := h.rehabs.ListRehabs(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, rehabs, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateRehab
// @Summary      Update a rehab project
// @Tags         rehabs
// @Accept       json
// @Produce      json
// @Param        id path string true "Rehab project ID"
// @Param        request body ops.UpdateRehabRequest true "Rehab update request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs/{id} [put]
func (h *RehabHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rehab project ID format")
		return
	}

	var req opsapp.UpdateRehabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rehab, err := h.rehabs.UpdateRehab(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rehab)
}

// ChangeStatus godoc
// @ID           changeRehabStatus
// @Summary      Change a rehab project's status
// @Tags         rehabs
// @Accept       json
// @Produce      json
// @Param        id path string true "Rehab project ID"
// @Param        request body ops.ChangeRehabStatusRequest true "Status change request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs/{id}/status [patch]
func (h *RehabHandler) ChangeStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rehab project ID format")
		return
	}

	var req opsapp.ChangeRehabStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rehab, err := h.rehabs.ChangeRehabStatus(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rehab)
}

// AddMilestone godoc
// @ID           addRehabMilestone
// @Summary      Add a milestone to a rehab project
// @Tags         rehabs
// @Accept       json
// @Produce      json
// @Param        id path string true "Rehab project ID"
// @Param        request body ops.AddMilestoneRequest true "Milestone request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs/{id}/milestones [post]
func (h *RehabHandler) AddMilestone(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rehab project ID format")
		return
	}

	var req opsapp.AddMilestoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rehab, err := h.rehabs.AddMilestone(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rehab)
}

// CompleteMilestone godoc
// @ID           completeRehabMilestone
// @Summary      Mark a rehab milestone complete
// @Tags         rehabs
// @Produce      json
// @Param        id          path string true "Rehab project ID"
// @Param        milestoneId path string true "Milestone ID"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs/{id}/milestones/{milestoneId}/complete [post]
func (h *RehabHandler) CompleteMilestone(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rehab project ID format")
		return
	}
	milestoneID, err := parseIDParam(c, "milestoneId")
	if err != nil {
		h.BadRequest(c, "Invalid milestone ID format")
		return
	}

	rehab, err := h.rehabs.CompleteMilestone(c.Request.Context(), getActorID(c), id, milestoneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rehab)
}

// Delete godoc
// @ID           deleteRehab
// @Summary      Delete a rehab project
// @Tags         rehabs
// @Param        id path string true "Rehab project ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /rehabs/{id} [delete]
func (h *RehabHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid rehab project ID format")
		return
	}

	if err := h.rehabs.DeleteRehab(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
