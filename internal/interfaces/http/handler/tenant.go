package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rently/backend/internal/application/billing"
	"github.com/rently/backend/internal/application/tenancy"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// TenantHandler handles tenant administration endpoints. Administration is
// admin-only; a tenant can read their own record, change their own password,
// and see their own payment history.
type TenantHandler struct {
	BaseHandler
	tenantService *tenancy.TenantService
	billService   *billing.BillService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *tenancy.TenantService, billService *billing.BillService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService, billService: billService}
}

// Create godoc
// @Summary      Register a tenant
// @Description  Optionally binds a room; binding an occupied room fails
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body tenancy.CreateTenantRequest true "Tenant"
// @Success      201 {object} dto.Response{data=tenancy.TenantResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req tenancy.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, tenant)
}

// Update godoc
// @Summary      Update a tenant
// @Description  Room moves claim the new room and release the old in one transaction
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Param        request body tenancy.UpdateTenantRequest true "Patch"
// @Success      200 {object} dto.Response{data=tenancy.TenantResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req tenancy.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// Delete godoc
// @Summary      Delete a tenant
// @Description  Frees the tenant's room; bills and payment history remain
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      204
// @Security     BearerAuth
// @Router       /tenants/{id} [delete]
func (h *TenantHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if err := h.tenantService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get godoc
// @Summary      Get a tenant
// @Description  Admins read anyone; a tenant reads only themselves
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=tenancy.TenantResponse}
// @Security     BearerAuth
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if !h.canAccess(c, id) {
		h.Forbidden(c, "Cannot access another tenant's record")
		return
	}

	tenant, err := h.tenantService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tenant)
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Success      200 {object} dto.Response{data=[]tenancy.TenantResponse}
// @Security     BearerAuth
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	var filter tenancy.TenantListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.tenantService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ChangePassword godoc
// @Summary      Change a tenant's password
// @Description  Requires the current password
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Param        request body tenancy.ChangePasswordRequest true "Passwords"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /tenants/{id}/password [put]
func (h *TenantHandler) ChangePassword(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if !h.canAccess(c, id) {
		h.Forbidden(c, "Cannot change another tenant's password")
		return
	}

	var req tenancy.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tenantService.ChangePassword(c.Request.Context(), id, req); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// PaymentHistory godoc
// @Summary      A tenant's payment history
// @Description  Settled bills joined with their payment records, newest first
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=[]billing.PaymentHistoryEntry}
// @Security     BearerAuth
// @Router       /tenants/{id}/payments [get]
func (h *TenantHandler) PaymentHistory(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	if !h.canAccess(c, id) {
		h.Forbidden(c, "Cannot access another tenant's payment history")
		return
	}

	history, err := h.billService.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, history)
}

// canAccess reports whether the caller may touch the given tenant record:
// admins always, regular tenants only their own.
func (h *TenantHandler) canAccess(c *gin.Context, id interface{ String() string }) bool {
	if middleware.IsAdmin(c) {
		return true
	}
	return middleware.GetJWTTenantID(c) == id.String()
}

// RegisterRoutes wires tenant endpoints. Create/Update/Delete/List are
// admin-only; the per-record reads run their own ownership check.
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	group := rg.Group("/tenants", authMW)
	group.POST("", adminMW, h.Create)
	group.GET("", adminMW, h.List)
	group.PUT("/:id", adminMW, h.Update)
	group.DELETE("/:id", adminMW, h.Delete)
	group.GET("/:id", h.Get)
	group.PUT("/:id/password", h.ChangePassword)
	group.GET("/:id/payments", h.PaymentHistory)
}
