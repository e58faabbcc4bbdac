package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// RoomFilter represents filter options for listing rooms
type RoomFilter struct {
	shared.Filter
	Status *RoomStatus
}

// TenantFilter represents filter options for listing tenants
type TenantFilter struct {
	shared.Filter
	Role *TenantRole
}

// RoomRepository defines persistence operations for rooms.
// Find methods return (nil, nil) when no row matches.
type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	Update(ctx context.Context, room *Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Room, error)
	FindByNumber(ctx context.Context, number string) (*Room, error)
	FindAll(ctx context.Context, filter RoomFilter) ([]*Room, int64, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// Claim conditionally marks an available room occupied in a single
	// statement. It returns ErrRoomOccupied when the room exists but is
	// already taken, and shared.ErrNotFound when no such room exists.
	// Two racing claims on the same room resolve to one success.
	Claim(ctx context.Context, number string) error

	// Release marks a room available. Releasing an already-available or
	// unknown room is a no-op.
	Release(ctx context.Context, number string) error
}

// TenantRepository defines persistence operations for tenant accounts.
// Find methods return (nil, nil) when no row matches.
type TenantRepository interface {
	Create(ctx context.Context, tenant *Tenant) error
	Update(ctx context.Context, tenant *Tenant) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	FindByUsername(ctx context.Context, username string) (*Tenant, error)
	FindByRoomNumber(ctx context.Context, number string) (*Tenant, error)
	FindAll(ctx context.Context, filter TenantFilter) ([]*Tenant, int64, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
