package tenancy

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/application/coordinator"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
)

// TenantService handles tenant account administration. Room bindings are
// always changed together with the room's status through the coordinator, so
// a tenant never points at a room that is not occupied by them.
type TenantService struct {
	tenantRepo tenancy.TenantRepository
	roomRepo   tenancy.RoomRepository
	atomic     coordinator.Atomic
}

// NewTenantService creates a new TenantService
func NewTenantService(tenantRepo tenancy.TenantRepository, roomRepo tenancy.RoomRepository, atomic coordinator.Atomic) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		roomRepo:   roomRepo,
		atomic:     atomic,
	}
}

// Create registers a tenant account, optionally binding a room
func (s *TenantService) Create(ctx context.Context, req CreateTenantRequest) (*TenantResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	exists, err := s.tenantRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, tenancy.ErrDuplicateUsername
	}

	role := tenancy.RoleUser
	if req.Role != "" {
		role = tenancy.TenantRole(req.Role)
	}

	tenant, err := tenancy.NewTenant(username, req.Password, role)
	if err != nil {
		return nil, err
	}
	if err := s.applyProfile(tenant, req.FullName, req.Phone, req.LineID); err != nil {
		return nil, err
	}

	if req.RoomNumber == nil || *req.RoomNumber == "" {
		if err := s.tenantRepo.Create(ctx, tenant); err != nil {
			return nil, err
		}
	} else {
		number := *req.RoomNumber
		err = s.atomic.Atomic(ctx, func(scope coordinator.Scope) error {
			if err := s.claimRoom(ctx, scope, number); err != nil {
				return err
			}
			tenant.BindRoom(number)
			return scope.Tenants.Create(ctx, tenant)
		})
		if err != nil {
			return nil, err
		}
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Update applies a partial update to a tenant account. A room change claims
// the new room and releases the old one in a single transaction; leaving the
// bound room unchanged in the request is always a no-op on occupancy.
func (s *TenantService) Update(ctx context.Context, id uuid.UUID, req UpdateTenantRequest) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewNotFoundError("Tenant", id.String())
	}

	if err := s.applyPatch(tenant, req); err != nil {
		return nil, err
	}

	switch {
	case req.RoomNumber == nil,
		tenant.RoomNumber != nil && *req.RoomNumber == *tenant.RoomNumber:
		// No occupancy change
		if err := s.tenantRepo.Update(ctx, tenant); err != nil {
			return nil, err
		}

	case *req.RoomNumber == "":
		previous := tenant.RoomNumber
		err = s.atomic.Atomic(ctx, func(scope coordinator.Scope) error {
			if previous != nil {
				if err := scope.Rooms.Release(ctx, *previous); err != nil {
					return err
				}
			}
			tenant.ReleaseRoom()
			return scope.Tenants.Update(ctx, tenant)
		})
		if err != nil {
			return nil, err
		}

	default:
		number := *req.RoomNumber
		previous := tenant.RoomNumber
		err = s.atomic.Atomic(ctx, func(scope coordinator.Scope) error {
			if err := s.claimRoom(ctx, scope, number); err != nil {
				return err
			}
			if previous != nil {
				if err := scope.Rooms.Release(ctx, *previous); err != nil {
					return err
				}
			}
			tenant.BindRoom(number)
			return scope.Tenants.Update(ctx, tenant)
		})
		if err != nil {
			return nil, err
		}
	}

	response := ToTenantResponse(tenant)
	return &response, nil
}

// Delete removes a tenant account and frees their room. Bills and payment
// history are kept for the books.
func (s *TenantService) Delete(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return shared.NewNotFoundError("Tenant", id.String())
	}

	return s.atomic.Atomic(ctx, func(scope coordinator.Scope) error {
		if tenant.RoomNumber != nil {
			if err := scope.Rooms.Release(ctx, *tenant.RoomNumber); err != nil {
				return err
			}
		}
		return scope.Tenants.Delete(ctx, id)
	})
}

// Get retrieves a tenant account
func (s *TenantService) Get(ctx context.Context, id uuid.UUID) (*TenantResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewNotFoundError("Tenant", id.String())
	}
	response := ToTenantResponse(tenant)
	return &response, nil
}

// List returns a page of tenant accounts
func (s *TenantService) List(ctx context.Context, filter TenantListFilter) (*shared.Paginated[TenantResponse], error) {
	domainFilter := tenancy.TenantFilter{Filter: toSharedFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search)}
	if filter.Role != "" {
		role := tenancy.TenantRole(filter.Role)
		domainFilter.Role = &role
	}

	tenants, total, err := s.tenantRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]TenantResponse, len(tenants))
	for i, tenant := range tenants {
		items[i] = ToTenantResponse(tenant)
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ChangePassword verifies the current password before setting a new one
func (s *TenantService) ChangePassword(ctx context.Context, id uuid.UUID, req ChangePasswordRequest) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if tenant == nil {
		return shared.NewNotFoundError("Tenant", id.String())
	}
	if !tenant.VerifyPassword(req.CurrentPassword) {
		return shared.NewDomainError("INVALID_CREDENTIALS", "Current password is incorrect")
	}
	if err := tenant.SetPassword(req.NewPassword); err != nil {
		return err
	}
	return s.tenantRepo.Update(ctx, tenant)
}

// claimRoom claims a room within a scope, translating a miss into a
// room-scoped not-found so callers see which entity was absent
func (s *TenantService) claimRoom(ctx context.Context, scope coordinator.Scope, number string) error {
	err := scope.Rooms.Claim(ctx, number)
	if errors.Is(err, shared.ErrNotFound) {
		return shared.NewNotFoundError("Room", number)
	}
	return err
}

func (s *TenantService) applyProfile(tenant *tenancy.Tenant, fullName, phone, lineID string) error {
	if fullName != "" {
		if err := tenant.SetFullName(fullName); err != nil {
			return err
		}
	}
	if phone != "" {
		if err := tenant.SetPhone(phone); err != nil {
			return err
		}
	}
	if lineID != "" {
		if err := tenant.SetLineID(lineID); err != nil {
			return err
		}
	}
	return nil
}

func (s *TenantService) applyPatch(tenant *tenancy.Tenant, req UpdateTenantRequest) error {
	if req.FullName != nil {
		if err := tenant.SetFullName(*req.FullName); err != nil {
			return err
		}
	}
	if req.Phone != nil {
		if err := tenant.SetPhone(*req.Phone); err != nil {
			return err
		}
	}
	if req.LineID != nil {
		if err := tenant.SetLineID(*req.LineID); err != nil {
			return err
		}
	}
	if req.Password != nil {
		if err := tenant.SetPassword(*req.Password); err != nil {
			return err
		}
	}
	return nil
}
