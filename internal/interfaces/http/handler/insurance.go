package handler

import (
	"github.com/gin-gonic/gin"

	complianceapp "github.com/propertyops/backend/internal/application/compliance"
)

// InsuranceHandler handles insurance policy API endpoints
type InsuranceHandler struct {
	BaseHandler
	policies *complianceapp.InsuranceService
}

// NewInsuranceHandler creates a new InsuranceHandler
func NewInsuranceHandler(policies *complianceapp.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{policies: policies}
}

// Create godoc
// @ID           createPolicy
// @Summary      Record an insurance policy
// @Tags         insurance
// @Accept       json
// @Produce      json
// @Param        request body compliance.CreatePolicyRequest true "Policy creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /insurance-policies [post]
func (h *InsuranceHandler) Create(c *gin.Context) {
	var req complianceapp.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	policy, err := h.policies.CreatePolicy(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, policy)
}

// Get godoc
// @ID           getPolicy
// @Summary      Get a policy by ID
// @Tags         insurance
// @Produce      json
// @Param        id path string true "Policy ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /insurance-policies/{id} [get]
func (h *InsuranceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid policy ID format")
		return
	}

	policy, err := h.policies.GetPolicy(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, policy)
}

// List godoc
// @ID           listPolicies
// @Summary      List insurance policies
// @Tags         insurance
// @Produce      json
// @Param        property_id    query string false "Filter by property"
// @Param        expiring_within query int   false "Only policies expiring within N days"
// @Param        page           query int    false "Page number"
// @Param        page_size      query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /insurance-policies [get]
func (h *InsuranceHandler) List(c *gin.Context) {
	var filter complianceapp.PolicyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	policies, total, err := h.policies.ListPolicies(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, policies, total, filter.Page, filter.PageSize)
}

// Renew godoc
// @ID           renewPolicy
// @Summary      Renew a policy with a new term
// @Tags         insurance
// @Accept       json
// @Produce      json
// @Param        id path string true "Policy ID"
// @Param        request body compliance.RenewPolicyRequest true "Renewal details"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /insurance-policies/{id}/renew [post]
func (h *InsuranceHandler) Renew(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid policy ID format")
		return
	}

	var req complianceapp.RenewPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	policy, err := h.policies.RenewPolicy(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, policy)
}

// Delete godoc
// @ID           deletePolicy
// @Summary      Delete a policy
// @Tags         insurance
// @Param        id path string true "Policy ID"
// @Success      204
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /insurance-policies/{id} [delete]
func (h *InsuranceHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid policy ID format")
		return
	}

	if err := h.policies.DeletePolicy(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
