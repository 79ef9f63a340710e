package handler

import (
	"github.com/gin-gonic/gin"

	portfolioapp "github.com/propertyops/backend/internal/application/portfolio"
)

// OwnerHandler handles owner-related API endpoints
type OwnerHandler struct {
	BaseHandler
	owners *portfolioapp.OwnerService
}

// NewOwnerHandler creates a new OwnerHandler
func NewOwnerHandler(owners *portfolioapp.OwnerService) *OwnerHandler {
	return &OwnerHandler{owners: owners}
}

// Create godoc
// @ID           createOwner
// @Summary      Create a new owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        request body portfolio.CreateOwnerRequest true "Owner creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners [post]
func (h *OwnerHandler) Create(c *gin.Context) {
	var req portfolioapp.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	owner, err := h.owners.CreateOwner(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, owner)
}

// Get godoc
// @ID           getOwner
// @Summary      Get an owner by ID
// @Tags         owners
// @Produce      json
// @Param        id path string true "Owner ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners/{id} [get]
func (h *OwnerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	owner, err := h.owners.GetOwner(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// List godoc
// @ID           listOwners
// @Summary      List owners
// @Tags         owners
// @Produce      json
// @Param        search    query string false "Search by name or email"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners [get]
func (h *OwnerHandler) List(c *gin.Context) {
	var filter portfolioapp.OwnerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	owners, total, err := h.owners.ListOwners(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, owners, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateOwner
// @Summary      Update an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner ID"
// @Param        request body portfolio.UpdateOwnerRequest true "Owner update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners/{id} [put]
func (h *OwnerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	var req portfolioapp.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	owner, err := h.owners.UpdateOwner(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// Delete godoc
// @ID           deleteOwner
// @Summary      Delete an owner
// @Description  Fails while the owner still holds properties
// @Tags         owners
// @Param        id path string true "Owner ID"
// @Success      204
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners/{id} [delete]
func (h *OwnerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	if err := h.owners.DeleteOwner(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddBankAccount godoc
// @ID           addOwnerBankAccount
// @Summary      Attach a bank account to an owner
// @Tags         owners
// @Accept       json
// @Produce      json
// @Param        id path string true "Owner ID"
// @Param        request body portfolio.AddBankAccountRequest true "Bank account request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners/{id}/bank-accounts [post]
func (h *OwnerHandler) AddBankAccount(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}

	var req portfolioapp.AddBankAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	owner, err := h.owners.AddBankAccount(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// RemoveBankAccount godoc
// @ID           removeOwnerBankAccount
// @Summary      Remove a bank account from an owner
// @Tags         owners
// @Produce      json
// @Param        id        path string true "Owner ID"
// @Param        accountId path string true "Bank account ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners/{id}/bank-accounts/{accountId} [delete]
func (h *OwnerHandler) RemoveBankAccount(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID format")
		return
	}

	owner, err := h.owners.RemoveBankAccount(c.Request.Context(), getActorID(c), id, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}

// SetDefaultBankAccount godoc
// @ID           setDefaultOwnerBankAccount
// @Summary      Mark a bank account as the owner's default
// @Tags         owners
// @Produce      json
// @Param        id        path string true "Owner ID"
// @Param        accountId path string true "Bank account ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /owners/{id}/bank-accounts/{accountId}/default [put]
func (h *OwnerHandler) SetDefaultBankAccount(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid owner ID format")
		return
	}
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		h.BadRequest(c, "Invalid bank account ID format")
		return
	}

	owner, err := h.owners.SetDefaultBankAccount(c.Request.Context(), getActorID(c), id, accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, owner)
}
