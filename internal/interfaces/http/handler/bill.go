package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rently/backend/internal/application/billing"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// BillHandler handles billing endpoints. Writing is admin-only; a tenant
// can list and read their own bills and settle them.
type BillHandler struct {
	BaseHandler
	billService *billing.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *billing.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Create godoc
// @Summary      Open a bill
// @Description  Snapshots the tenant's room rent; utility rates default from configuration
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body billing.CreateBillRequest true "Bill"
// @Success      201 {object} dto.Response{data=billing.BillResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bills [post]
func (h *BillHandler) Create(c *gin.Context) {
	var req billing.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, bill)
}

// Update godoc
// @Summary      Edit an unpaid bill
// @Description  Usage and rate edits recompute the total under the original rent snapshot
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        request body billing.UpdateBillRequest true "Patch"
// @Success      200 {object} dto.Response{data=billing.BillResponse}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /bills/{id} [put]
func (h *BillHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	bill, err := h.billService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bill)
}

// Delete godoc
// @Summary      Delete a bill
// @Description  Removes the bill together with its payment records
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      204
// @Security     BearerAuth
// @Router       /bills/{id} [delete]
func (h *BillHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	if err := h.billService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get godoc
// @Summary      Get a bill
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} dto.Response{data=billing.BillResponse}
// @Security     BearerAuth
// @Router       /bills/{id} [get]
func (h *BillHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	bill, err := h.billService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if !middleware.IsAdmin(c) {
		if tenantID, ok := middleware.CurrentTenantUUID(c); !ok || bill.TenantID != tenantID {
			h.NotFound(c, "Bill not found")
			return
		}
	}

	h.Success(c, bill)
}

// List godoc
// @Summary      List bills
// @Description  Admins see everything; tenants see their own bills only
// @Tags         bills
// @Produce      json
// @Param        payment_status query string false "unpaid or paid"
// @Success      200 {object} dto.Response{data=[]billing.BillResponse}
// @Security     BearerAuth
// @Router       /bills [get]
func (h *BillHandler) List(c *gin.Context) {
	var filter billing.BillListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	if !middleware.IsAdmin(c) {
		tenantID, ok := middleware.CurrentTenantUUID(c)
		if !ok {
			h.Unauthorized(c, "Authentication required")
			return
		}
		filter.TenantID = &tenantID
	}

	page, err := h.billService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Pay godoc
// @Summary      Settle a bill
// @Description  The unpaid-to-paid transition happens exactly once; repeated calls report already_paid
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        request body billing.PayBillRequest true "Payment"
// @Success      200 {object} dto.Response{data=billing.PayBillResponse}
// @Security     BearerAuth
// @Router       /bills/{id}/pay [post]
func (h *BillHandler) Pay(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid bill ID")
		return
	}

	var req billing.PayBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if !middleware.IsAdmin(c) {
		if err := h.ensureOwnBill(c, id); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	result, err := h.billService.Pay(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ensureOwnBill verifies the authenticated tenant owns the bill
func (h *BillHandler) ensureOwnBill(c *gin.Context, id uuid.UUID) error {
	bill, err := h.billService.Get(c.Request.Context(), id)
	if err != nil {
		return err
	}
	tenantID, ok := middleware.CurrentTenantUUID(c)
	if !ok || bill.TenantID != tenantID {
		return billNotFoundError(id)
	}
	return nil
}

// RegisterRoutes wires billing endpoints. Create/Update/Delete are
// admin-only; reads and payment run ownership checks for regular tenants.
func (h *BillHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	group := rg.Group("/bills", authMW)
	group.POST("", adminMW, h.Create)
	group.PUT("/:id", adminMW, h.Update)
	group.DELETE("/:id", adminMW, h.Delete)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("/:id/pay", h.Pay)
}
