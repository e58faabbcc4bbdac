package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rently/backend/internal/application/bulletin"
)

// AnnouncementHandler handles bulletin endpoints. Writing is admin-only;
// every authenticated tenant can read.
type AnnouncementHandler struct {
	BaseHandler
	service *bulletin.Service
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(service *bulletin.Service) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// Create godoc
// @Summary      Publish an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        request body bulletin.CreateAnnouncementRequest true "Announcement"
// @Success      201 {object} dto.Response{data=bulletin.AnnouncementResponse}
// @Security     BearerAuth
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	authorID, err := currentTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req bulletin.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	announcement, err := h.service.Create(c.Request.Context(), authorID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, announcement)
}

// Update godoc
// @Summary      Edit an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Param        request body bulletin.UpdateAnnouncementRequest true "Patch"
// @Success      200 {object} dto.Response{data=bulletin.AnnouncementResponse}
// @Security     BearerAuth
// @Router       /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID")
		return
	}

	var req bulletin.UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	announcement, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, announcement)
}

// Delete godoc
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Success      204
// @Security     BearerAuth
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get godoc
// @Summary      Get an announcement
// @Tags         announcements
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Success      200 {object} dto.Response{data=bulletin.AnnouncementResponse}
// @Security     BearerAuth
// @Router       /announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid announcement ID")
		return
	}

	announcement, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, announcement)
}

// List godoc
// @Summary      List announcements
// @Description  Newest first by default
// @Tags         announcements
// @Produce      json
// @Success      200 {object} dto.Response{data=[]bulletin.AnnouncementResponse}
// @Security     BearerAuth
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	var filter bulletin.AnnouncementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// RegisterRoutes wires bulletin endpoints. Reads are open to every
// authenticated tenant; writes are admin-only.
func (h *AnnouncementHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	group := rg.Group("/announcements", authMW)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.POST("", adminMW, h.Create)
	group.PUT("/:id", adminMW, h.Update)
	group.DELETE("/:id", adminMW, h.Delete)
}
