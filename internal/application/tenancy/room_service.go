package tenancy

import (
	"context"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
)

// RoomService handles room administration
type RoomService struct {
	roomRepo   tenancy.RoomRepository
	tenantRepo tenancy.TenantRepository
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo tenancy.RoomRepository, tenantRepo tenancy.TenantRepository) *RoomService {
	return &RoomService{
		roomRepo:   roomRepo,
		tenantRepo: tenantRepo,
	}
}

// Create creates a new room
func (s *RoomService) Create(ctx context.Context, req CreateRoomRequest) (*RoomResponse, error) {
	exists, err := s.roomRepo.ExistsByNumber(ctx, req.Number)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, tenancy.ErrDuplicateRoomNumber
	}

	room, err := tenancy.NewRoom(req.Number, req.Rent, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	response := ToRoomResponse(room)
	return &response, nil
}

// Update applies a partial update to a room. Rent changes affect only bills
// created afterwards; issued bills keep their snapshot.
func (s *RoomService) Update(ctx context.Context, id uuid.UUID, req UpdateRoomRequest) (*RoomResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewNotFoundError("Room", id.String())
	}

	if req.Number != nil && *req.Number != room.Number {
		// Renumbering while occupied would orphan the occupant's binding
		if room.IsOccupied() {
			return nil, shared.NewDomainError("INVALID_STATE", "Cannot renumber an occupied room")
		}
		exists, err := s.roomRepo.ExistsByNumber(ctx, *req.Number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, tenancy.ErrDuplicateRoomNumber
		}
		if err := room.Renumber(*req.Number); err != nil {
			return nil, err
		}
	}
	if req.Rent != nil {
		if err := room.ChangeRent(*req.Rent); err != nil {
			return nil, err
		}
	}
	if req.Description != nil {
		room.SetDescription(*req.Description)
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}

	response := ToRoomResponse(room)
	return &response, nil
}

// Delete removes a room. Occupied rooms cannot be deleted.
func (s *RoomService) Delete(ctx context.Context, id uuid.UUID) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return shared.NewNotFoundError("Room", id.String())
	}
	if room.IsOccupied() {
		return tenancy.ErrRoomOccupied
	}

	return s.roomRepo.Delete(ctx, id)
}

// Get retrieves a room with its current occupant, if any
func (s *RoomService) Get(ctx context.Context, id uuid.UUID) (*RoomDetailResponse, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewNotFoundError("Room", id.String())
	}

	detail := &RoomDetailResponse{RoomResponse: ToRoomResponse(room)}
	if room.IsOccupied() {
		tenant, err := s.tenantRepo.FindByRoomNumber(ctx, room.Number)
		if err != nil {
			return nil, err
		}
		if tenant != nil {
			response := ToTenantResponse(tenant)
			detail.Tenant = &response
		}
	}
	return detail, nil
}

// GetByNumber retrieves a room by its business number
func (s *RoomService) GetByNumber(ctx context.Context, number string) (*RoomDetailResponse, error) {
	room, err := s.roomRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewNotFoundError("Room", number)
	}
	return s.Get(ctx, room.ID)
}

// List returns a page of rooms
func (s *RoomService) List(ctx context.Context, filter RoomListFilter) (*shared.Paginated[RoomResponse], error) {
	domainFilter := tenancy.RoomFilter{Filter: toSharedFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)}
	if filter.Status != "" {
		status := tenancy.RoomStatus(filter.Status)
		domainFilter.Status = &status
	}

	rooms, total, err := s.roomRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]RoomResponse, len(rooms))
	for i, room := range rooms {
		items[i] = ToRoomResponse(room)
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

func toSharedFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
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
	filter.Search = search
	return filter
}
