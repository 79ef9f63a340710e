package handler

import (
	"github.com/gin-gonic/gin"

	billingapp "github.com/propertyops/backend/internal/application/billing"
)

// BillHandler handles PM bill API endpoints
type BillHandler struct {
	BaseHandler
	bills *billingapp.BillService
}

// NewBillHandler creates a new BillHandler
func NewBillHandler(bills *billingapp.BillService) *BillHandler {
	return &BillHandler{bills: bills}
}

// Create godoc
// @ID           createBill
// @Summary      Record a received PM bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body billing.CreateBillRequest true "Bill creation request"
// @Success      201 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req billingapp.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.bills.CreateBill(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, bill)
}

// Get godoc
// @ID           getBill
// @Summary      Get a bill by ID
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.bills.GetBill(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// List godoc
// @ID           listBills
// @Summary      List bills
// @Tags         bills
// @Produce      json
// @Param        property_id query string false "Filter by property"
// @Param        status      query string false "Filter by status"
// @Param        page        query int    false "Page number"
// @Param        page_size   query int    false "Page size"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var filter billingapp.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	bills, total, err := h.bills.ListBills(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, bills, total, filter.Page, filter.PageSize)
}

// StartReview godoc
// @ID           startBillReview
// @Summary      Move a received bill into review
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id}/review [post]
func (h *BillHandler) StartReview(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.bills.StartReview(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// Approve godoc
// @ID           approveBill
// @Summary      Approve a bill for payment
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id}/approve [post]
func (h *BillHandler) Approve(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.bills.ApproveBill(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// Dispute godoc
// @ID           disputeBill
// @Summary      Dispute a bill
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id}/dispute [post]
func (h *BillHandler) Dispute(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	bill, err := h.bills.DisputeBill(c.Request.Context(), getActorID(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// MarkPaid godoc
// @ID           markBillPaid
// @Summary      Mark an approved bill paid
// @Description  Fans each line item out into a property expense in the same transaction
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        request body billing.MarkPaidRequest true "Payment details"
// @Success      200 {object} dto.Response
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id}/pay [post]
func (h *BillHandler) MarkPaid(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.MarkPaidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.bills.MarkPaid(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// AddMessage godoc
// @ID           addBillMessage
// @Summary      Append a message to a bill's thread
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        request body billing.AddMessageRequest true "Message body"
// @Success      200 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id}/messages [post]
func (h *BillHandler) AddMessage(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	var req billingapp.AddMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	bill, err := h.bills.AddMessage(c.Request.Context(), getActorID(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, bill)
}

// BulkApprove godoc
// @ID           bulkApproveBills
// @Summary      Approve a batch of bills
// @Description  Processes each bill independently and reports per-bill outcomes
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body billing.BulkBillRequest true "Bill IDs"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/bulk-approve [post]
func (h *BillHandler) BulkApprove(c *gin.Context) {
	var req billingapp.BulkBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.bills.BulkApprove(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkPay godoc
// @ID           bulkPayBills
// @Summary      Mark a batch of approved bills paid
// @Description  Processes each bill independently and reports per-bill outcomes
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body billing.BulkPayRequest true "Bill IDs and payment details"
// @Success      200 {object} dto.Response
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/bulk-pay [post]
func (h *BillHandler) BulkPay(c *gin.Context) {
	var req billingapp.BulkPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.bills.BulkPay(c.Request.Context(), getActorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete godoc
// @ID           deleteBill
// @Summary      Delete a bill
// @Description  Paid bills cannot be deleted
// @Tags         bills
// @Param        id path string true "Bill ID"
// @Success      204
// @Failure      422 {object} dto.Response
// @Security     BearerAuth
// @Router       /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid bill ID format")
		return
	}

	if err := h.bills.DeleteBill(c.Request.Context(), getActorID(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
