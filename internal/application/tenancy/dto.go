package tenancy

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Room DTOs
// =============================================================================

// CreateRoomRequest represents a request to create a new room
type CreateRoomRequest struct {
	Number      string          `json:"number" binding:"required,min=1,max=20"`
	Rent        decimal.Decimal `json:"rent"`
	Description string          `json:"description" binding:"max=500"`
}

// UpdateRoomRequest represents a partial update to a room.
// Absent fields are left unchanged.
type UpdateRoomRequest struct {
	Number      *string          `json:"number" binding:"omitempty,min=1,max=20"`
	Rent        *decimal.Decimal `json:"rent"`
	Description *string          `json:"description" binding:"omitempty,max=500"`
}

// RoomResponse represents a room in API responses
type RoomResponse struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	Rent        decimal.Decimal `json:"rent"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// RoomDetailResponse is a room with its current occupant, if any
type RoomDetailResponse struct {
	RoomResponse
	Tenant *TenantResponse `json:"tenant,omitempty"`
}

// RoomListFilter represents filter options for the room list
type RoomListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=available occupied"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToRoomResponse converts a domain room to its response form
func ToRoomResponse(room *tenancy.Room) RoomResponse {
	return RoomResponse{
		ID:          room.ID,
		Number:      room.Number,
		Rent:        room.Rent,
		Description: room.Description,
		Status:      string(room.Status),
		CreatedAt:   room.CreatedAt,
		UpdatedAt:   room.UpdatedAt,
	}
}

// =============================================================================
// Tenant DTOs
// =============================================================================

// CreateTenantRequest represents a request to register a tenant account
type CreateTenantRequest struct {
	Username   string  `json:"username" binding:"required,min=3,max=100"`
	Password   string  `json:"password" binding:"required,min=8,max=72"`
	FullName   string  `json:"full_name" binding:"max=200"`
	Phone      string  `json:"phone" binding:"max=50"`
	LineID     string  `json:"line_id" binding:"max=100"`
	Role       string  `json:"role" binding:"omitempty,oneof=user admin"`
	RoomNumber *string `json:"room_number" binding:"omitempty,max=20"`
}

// UpdateTenantRequest represents a partial update to a tenant account.
// Absent fields are left unchanged. An empty RoomNumber releases the
// tenant's current room.
type UpdateTenantRequest struct {
	FullName   *string `json:"full_name" binding:"omitempty,max=200"`
	Phone      *string `json:"phone" binding:"omitempty,max=50"`
	LineID     *string `json:"line_id" binding:"omitempty,max=100"`
	Password   *string `json:"password" binding:"omitempty,min=8,max=72"`
	RoomNumber *string `json:"room_number" binding:"omitempty,max=20"`
}

// ChangePasswordRequest represents a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8,max=72"`
}

// TenantResponse represents a tenant account in API responses
type TenantResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	FullName   string    `json:"full_name"`
	Phone      string    `json:"phone"`
	LineID     string    `json:"line_id"`
	Role       string    `json:"role"`
	RoomNumber *string   `json:"room_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TenantListFilter represents filter options for the tenant list
type TenantListFilter struct {
	Role     string `form:"role" binding:"omitempty,oneof=user admin"`
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToTenantResponse converts a domain tenant to its response form
func ToTenantResponse(tenant *tenancy.Tenant) TenantResponse {
	return TenantResponse{
		ID:         tenant.ID,
		Username:   tenant.Username,
		FullName:   tenant.FullName,
		Phone:      tenant.Phone,
		LineID:     tenant.LineID,
		Role:       string(tenant.Role),
		RoomNumber: tenant.RoomNumber,
		CreatedAt:  tenant.CreatedAt,
		UpdatedAt:  tenant.UpdatedAt,
	}
}
