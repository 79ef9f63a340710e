package handler

import (
	"github.com/gin-gonic/gin"

	portfolioapp "github.com/propertyops/backend/internal/application/portfolio"
)

// PropertyHandler handles property-related API endpoints
type PropertyHandler struct {
	BaseHandler
	properties *portfolioapp.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(properties *portfolioapp.PropertyService) *PropertyHandler {
	return &PropertyHandler{properties: properties}
}

// Create godoc
// @ID           createProperty
// @Summary      Create a new property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        request body portfolio.CreatePropertyRequest true "Property creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties [post]
func (h *PropertyHandler) Create(c *gin.Context) {
	var req portfolioapp.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.properties.CreateProperty(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, property)
}

// Get godoc
// @ID           getProperty
// @Summary      Get a property by ID
// @Tags         properties
// @Produce      json
// @Param        id path string true "Property ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id} [get]
func (h *PropertyHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	property, err := h.properties.GetProperty(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// List godoc
// @ID           listProperties
// @Summary      List properties
// @Tags         properties
// @Produce      json
// @Param        owner_id  query string false "Filter by owner"
// @Param        status    query string false "Filter by status"
// @Param        search    query string false "Search by address"
// @Param        page      query int    false "Page number"
// @Param        page_size query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties [get]
func (h *PropertyHandler) List(c *gin.Context) {
	var filter portfolioapp.PropertyListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	properties, total, err := h.properties.ListProperties(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, properties, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateProperty
// @Summary      Update a property
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body portfolio.UpdatePropertyRequest true "Property update request"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id} [put]
func (h *PropertyHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req portfolioapp.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.properties.UpdateProperty(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// ChangeStatus godoc
// @ID           changePropertyStatus
// @Summary      Change a property's lifecycle status
// @Tags         properties
// @Accept       json
// @Produce      json
// @Param        id path string true "Property ID"
// @Param        request body portfolio.ChangePropertyStatusRequest true "Status change request"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id}/status [patch]
func (h *PropertyHandler) ChangeStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	var req portfolioapp.ChangePropertyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	property, err := h.properties.ChangeStatus(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, property)
}

// Delete godoc
// @ID           deleteProperty
// @Summary      Delete a property
// @Description  Fails while the property has an active lease
// @Tags         properties
// @Param        id path string true "Property ID"
// @Success      204
// @Failure      409 {object} dto.Response
// @Security     BearerAuth
// @Router       /properties/{id} [delete]
func (h *PropertyHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid property ID format")
		return
	}

	if err := h.properties.DeleteProperty(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
