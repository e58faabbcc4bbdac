package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rently/backend/internal/application/billing"
	"github.com/rently/backend/internal/application/tenancy"
)

// RoomHandler handles room administration endpoints. All routes are
// admin-only except the per-room bill listing, which tenants reach through
// their own room.
type RoomHandler struct {
	BaseHandler
	roomService *tenancy.RoomService
	billService *billing.BillService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *tenancy.RoomService, billService *billing.BillService) *RoomHandler {
	return &RoomHandler{roomService: roomService, billService: billService}
}

// Create godoc
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request body tenancy.CreateRoomRequest true "Room"
// @Success      201 {object} dto.Response{data=tenancy.RoomResponse}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req tenancy.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, room)
}

// Update godoc
// @Summary      Update a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id path string true "Room ID"
// @Param        request body tenancy.UpdateRoomRequest true "Patch"
// @Success      200 {object} dto.Response{data=tenancy.RoomResponse}
// @Security     BearerAuth
// @Router       /rooms/{id} [put]
func (h *RoomHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	var req tenancy.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// Delete godoc
// @Summary      Delete a room
// @Description  Occupied rooms cannot be deleted
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      204
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /rooms/{id} [delete]
func (h *RoomHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	if err := h.roomService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Get godoc
// @Summary      Get a room with its occupant
// @Tags         rooms
// @Produce      json
// @Param        id path string true "Room ID"
// @Success      200 {object} dto.Response{data=tenancy.RoomDetailResponse}
// @Security     BearerAuth
// @Router       /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid room ID")
		return
	}

	room, err := h.roomService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, room)
}

// List godoc
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Param        status query string false "available or occupied"
// @Success      200 {object} dto.Response{data=[]tenancy.RoomResponse}
// @Security     BearerAuth
// @Router       /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var filter tenancy.RoomListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.roomService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Bills godoc
// @Summary      List a room's bills
// @Description  Outstanding bills by default; include_settled=true widens to the full history
// @Tags         rooms
// @Produce      json
// @Param        number path string true "Room number"
// @Param        include_settled query bool false "Include paid bills"
// @Success      200 {object} dto.Response{data=[]billing.BillResponse}
// @Security     BearerAuth
// @Router       /rooms/{number}/bills [get]
func (h *RoomHandler) Bills(c *gin.Context) {
	number := c.Param("number")
	includeSettled := c.Query("include_settled") == "true"

	bills, err := h.billService.ListByRoom(c.Request.Context(), number, includeSettled)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, bills)
}

// RegisterRoutes wires room endpoints under the admin guard
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	group := rg.Group("/rooms", authMW, adminMW)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
	group.GET("/number/:number/bills", h.Bills)
}
