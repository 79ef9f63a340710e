package handler

import (
	"github.com/gin-gonic/gin"

	complianceapp "github.com/propertyops/backend/internal/application/compliance"
)

// TaxHandler handles property tax API endpoints
type TaxHandler struct {
	BaseHandler
	taxes *complianceapp.TaxService
}

// NewTaxHandler creates a new TaxHandler
func NewTaxHandler(taxes *complianceapp.TaxService) *TaxHandler {
	return &TaxHandler{taxes: taxes}
}

// Create godoc
// @ID           createTax
// @Summary      Record a property tax year
// @Description  One record per property and tax year
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        request body compliance.CreateTaxRequest true "Tax creation request"
// @Success      201 {object} dto.Response
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /taxes [post]
func (h *TaxHandler) Create(c *gin.Context) {
	var req complianceapp.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tax, err := h.taxes.CreateTax(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tax)
}

// Get godoc
// @ID           getTax
// @Summary      Get a tax record by ID
// @Tags         taxes
// @Produce      json
// @Param        id path string true "Tax record ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /taxes/{id} [get]
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax record ID format")
		return
	}

	tax, err := h.taxes.GetTax(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// List godoc
// @ID           listTaxes
// @Summary      List tax records
// @Tags         taxes
// @Produce      json
// @Param        property_id query string false "Filter by property"
// @Param        tax_year    query int    false "Filter by tax year"
// @Param        status      query string false "Filter by status"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /taxes [get]
func (h *TaxHandler) List(c *gin.Context) {
	var filter complianceapp.TaxListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	taxes, total, err := h.taxes.ListTaxes(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, taxes, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateTax
// @Summary      Update an unpaid tax record
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax record ID"
// @Param        request body compliance.UpdateTaxRequest true "Tax update request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /taxes/{id} [put]
func (h *TaxHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax record ID format")
		return
	}

	var req complianceapp.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tax, err := h.taxes.UpdateTax(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// MarkPaid godoc
// @ID           markTaxPaid
// @Summary      Mark a tax record paid
// @Description  Creates the matching property expense in the same transaction
// @Tags         taxes
// @Accept       json
// @Produce      json
// @Param        id path string true "Tax record ID"
// @Param        request body compliance.MarkTaxPaidRequest true "Payment details"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /taxes/{id}/pay [post]
func (h *TaxHandler) MarkPaid(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax record ID format")
		return
	}

	var req complianceapp.MarkTaxPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	tax, err := h.taxes.MarkTaxPaid(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tax)
}

// Delete godoc
// @ID           deleteTax
// @Summary      Delete a tax record
// @Description  Paid tax records cannot be deleted
// @Tags         taxes
// @Param        id path string true "Tax record ID"
// @Success      204
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /taxes/{id} [delete]
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid tax record ID format")
		return
	}

	if err := h.taxes.DeleteTax(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
