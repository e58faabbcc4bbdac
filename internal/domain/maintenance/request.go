package maintenance

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// RequestStatus represents the handling state of a maintenance request
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusInProgress RequestStatus = "in_progress"
	StatusResolved   RequestStatus = "resolved"
)

// Request is a maintenance ticket raised by a tenant for their room
type Request struct {
	shared.BaseEntity
	TenantID   uuid.UUID
	RoomNumber string
	Title      string
	Detail     string
	Status     RequestStatus
}

// NewRequest creates a pending maintenance request
func NewRequest(tenantID uuid.UUID, roomNumber, title, detail string) (*Request, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewInvalidInputError("tenant_id", "is required")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewInvalidInputError("title", "is required")
	}
	if len(title) > 200 {
		return nil, shared.NewInvalidInputError("title", "cannot exceed 200 characters")
	}

	return &Request{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		RoomNumber: strings.TrimSpace(roomNumber),
		Title:      title,
		Detail:     strings.TrimSpace(detail),
		Status:     StatusPending,
	}, nil
}

// SetStatus moves the request along its handling lifecycle
func (r *Request) SetStatus(status RequestStatus) error {
	switch status {
	case StatusPending, StatusInProgress, StatusResolved:
		r.Status = status
		r.Touch()
		return nil
	default:
		return shared.NewInvalidInputError("status", "must be pending, in_progress or resolved")
	}
}

// RequestFilter represents filter options for listing requests
type RequestFilter struct {
	shared.Filter
	TenantID *uuid.UUID
	Status   *RequestStatus
}

// RequestRepository defines persistence operations for maintenance requests
type RequestRepository interface {
	Create(ctx context.Context, request *Request) error
	Update(ctx context.Context, request *Request) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindAll(ctx context.Context, filter RequestFilter) ([]*Request, int64, error)
}
