package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/maintenance"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
)

// CreateRequestRequest opens a maintenance ticket. The room is taken from
// the reporting tenant's current binding.
type CreateRequestRequest struct {
	Title  string `json:"title" binding:"required,min=1,max=200"`
	Detail string `json:"detail" binding:"omitempty,max=5000"`
}

// UpdateRequestRequest is an admin patch over a ticket
type UpdateRequestRequest struct {
	Title  *string `json:"title" binding:"omitempty,min=1,max=200"`
	Detail *string `json:"detail" binding:"omitempty,max=5000"`
	Status *string `json:"status" binding:"omitempty,oneof=pending in_progress resolved"`
}

// RequestResponse represents a maintenance request in API responses
type RequestResponse struct {
	ID         uuid.UUID `json:"id"`
	TenantID   uuid.UUID `json:"tenant_id"`
	RoomNumber string    `json:"room_number"`
	Title      string    `json:"title"`
	Detail     string    `json:"detail,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// RequestListFilter represents query parameters for listing requests
type RequestListFilter struct {
	TenantID *uuid.UUID `form:"tenant_id"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending in_progress resolved"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// Service handles the maintenance request lifecycle. Tenants raise and read
// their own tickets; administrators move them along the handling states.
type Service struct {
	requestRepo maintenance.RequestRepository
	tenantRepo  tenancy.TenantRepository
}

// NewService creates a new maintenance Service
func NewService(requestRepo maintenance.RequestRepository, tenantRepo tenancy.TenantRepository) *Service {
	return &Service{requestRepo: requestRepo, tenantRepo: tenantRepo}
}

// Create opens a pending ticket for the reporting tenant's room
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req CreateRequestRequest) (*RequestResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewNotFoundError("Tenant", tenantID.String())
	}

	roomNumber := ""
	if tenant.RoomNumber != nil {
		roomNumber = *tenant.RoomNumber
	}

	request, err := maintenance.NewRequest(tenantID, roomNumber, req.Title, req.Detail)
	if err != nil {
		return nil, err
	}
	if err := s.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	response := toRequestResponse(request)
	return &response, nil
}

// Update patches a ticket's content or moves its status
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateRequestRequest) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, shared.NewNotFoundError("Maintenance request", id.String())
	}

	if req.Title != nil {
		request.Title = *req.Title
	}
	if req.Detail != nil {
		request.Detail = *req.Detail
	}
	if req.Status != nil {
		if err := request.SetStatus(maintenance.RequestStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.requestRepo.Update(ctx, request); err != nil {
		return nil, err
	}

	response := toRequestResponse(request)
	return &response, nil
}

// Delete removes a ticket
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.requestRepo.Delete(ctx, id)
}

// Get returns a single ticket. When requesterID is non-nil the ticket must
// belong to that tenant; admins pass nil and see everything.
func (s *Service) Get(ctx context.Context, id uuid.UUID, requesterID *uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, shared.NewNotFoundError("Maintenance request", id.String())
	}
	if requesterID != nil && request.TenantID != *requesterID {
		// Hidden rather than forbidden
		return nil, shared.NewNotFoundError("Maintenance request", id.String())
	}

	response := toRequestResponse(request)
	return &response, nil
}

// List returns a paginated page of tickets matching the filter
func (s *Service) List(ctx context.Context, filter RequestListFilter) (*shared.Paginated[RequestResponse], error) {
	domainFilter := maintenance.RequestFilter{
		Filter:   toSharedFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir),
		TenantID: filter.TenantID,
	}
	if filter.Status != "" {
		status := maintenance.RequestStatus(filter.Status)
		domainFilter.Status = &status
	}

	requests, total, err := s.requestRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]RequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, toRequestResponse(request))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toRequestResponse(request *maintenance.Request) RequestResponse {
	return RequestResponse{
		ID:         request.ID,
		TenantID:   request.TenantID,
		RoomNumber: request.RoomNumber,
		Title:      request.Title,
		Detail:     request.Detail,
		Status:     string(request.Status),
		CreatedAt:  request.CreatedAt,
		UpdatedAt:  request.UpdatedAt,
	}
}

func toSharedFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}
