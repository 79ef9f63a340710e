package handler

import (
	"github.com/gin-gonic/gin"

	portfolioapp "github.com/propertyops/backend/internal/application/portfolio"
)

// LeaseHandler handles lease-related API endpoints
type LeaseHandler struct {
	BaseHandler
	leases *portfolioapp.LeaseService
}

// NewLeaseHandler creates a new LeaseHandler
func NewLeaseHandler(leases *portfolioapp.LeaseService) *LeaseHandler {
	return &LeaseHandler{leases: leases}
}

// Create godoc
// @ID           createLease
// @Summary      Create a new active lease
// @Description  Terminates any active lease already on the property and marks it occupied
// @Tags         leases
// @Accept       json
// @Produce      json
// @Param        request body portfolio.CreateLeaseRequest true "Lease creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /leases [post]
func (h *LeaseHandler) Create(c *gin.Context) {
	var req portfolioapp.CreateLeaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	lease, err := h.leases.CreateLease(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lease)
}

// Get godoc
// @ID           getLease
// @Summary      Get a lease by ID
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /leases/{id} [get]
func (h *LeaseHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	lease, err := h.leases.GetLease(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lease)
}

// List godoc
// @ID           listLeases
// @Summary      List leases
// @Tags         leases
// @Produce      json
// @Param        property_id query string false "Filter by property"
// @Param        tenant_id   query string false "Filter by tenant"
// @Param        status      query string false "Filter by status"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /leases [get]
func (h *LeaseHandler) List(c *gin.Context) {
	var filter portfolioapp.LeaseListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	leases, total, err := h.leases.ListLeases(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, leases, total, filter.Page, filter.PageSize)
}

// Terminate godoc
// @ID           terminateLease
// @Summary      Terminate a lease
// @Description  Marks the property vacant when no other active lease remains
// @Tags         leases
// @Produce      json
// @Param        id path string true "Lease ID"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /leases/{id}/terminate [post]
func (h *LeaseHandler) Terminate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid lease ID format")
		return
	}

	lease, err := h.leases.TerminateLease(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lease)
}
