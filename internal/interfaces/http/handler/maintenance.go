package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rently/backend/internal/application/maintenance"
	"github.com/rently/backend/internal/interfaces/http/middleware"
)

// MaintenanceHandler handles maintenance request endpoints. Tenants raise
// and read their own tickets; admins see and manage all of them.
type MaintenanceHandler struct {
	BaseHandler
	service *maintenance.Service
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(service *maintenance.Service) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// Create godoc
// @Summary      Raise a maintenance request
// @Description  The room is taken from the reporting tenant's current binding
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        request body maintenance.CreateRequestRequest true "Request"
// @Success      201 {object} dto.Response{data=maintenance.RequestResponse}
// @Security     BearerAuth
// @Router       /maintenance-requests [post]
func (h *MaintenanceHandler) Create(c *gin.Context) {
	tenantID, err := currentTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req maintenance.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.service.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, request)
}

// Update godoc
// @Summary      Update a maintenance request
// @Description  Moves the status along pending, in_progress, resolved
// @Tags         maintenance
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        request body maintenance.UpdateRequestRequest true "Patch"
// @Success      200 {object} dto.Response{data=maintenance.RequestResponse}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [put]
func (h *MaintenanceHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var req maintenance.UpdateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	request, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// Delete godoc
// @Summary      Delete a maintenance request
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      204
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [delete]
func (h *MaintenanceHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get godoc
// @Summary      Get a maintenance request
// @Description  Tenants only see their own tickets
// @Tags         maintenance
// @Produce      json
// @Param        id path string true "Request ID"
// @Success      200 {object} dto.Response{data=maintenance.RequestResponse}
// @Security     BearerAuth
// @Router       /maintenance-requests/{id} [get]
func (h *MaintenanceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	var requesterID *uuid.UUID
	if !middleware.IsAdmin(c) {
		tenantID, err := currentTenantID(c)
		if err != nil {
			h.Unauthorized(c, "Authentication required")
			return
		}
		requesterID = &tenantID
	}

	request, err := h.service.Get(c.Request.Context(), id, requesterID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, request)
}

// List godoc
// @Summary      List maintenance requests
// @Description  Admins see everything; tenants see their own tickets only
// @Tags         maintenance
// @Produce      json
// @Param        status query string false "pending, in_progress or resolved"
// @Success      200 {object} dto.Response{data=[]maintenance.RequestResponse}
// @Security     BearerAuth
// @Router       /maintenance-requests [get]
func (h *MaintenanceHandler) List(c *gin.Context) {
	var filter maintenance.RequestListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	if !middleware.IsAdmin(c) {
		tenantID, err := currentTenantID(c)
		if err != nil {
			h.Unauthorized(c, "Authentication required")
			return
		}
		filter.TenantID = &tenantID
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes wires maintenance endpoints. Status moves and deletion are
// admin-only; the rest run ownership checks for regular tenants.
func (h *MaintenanceHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	group := rg.Group("/maintenance-requests", authMW)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", adminMW, h.Update)
	group.DELETE("/:id", adminMW, h.Delete)
}
