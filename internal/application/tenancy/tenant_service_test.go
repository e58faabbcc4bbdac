package tenancy

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/application/coordinator"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockRoomRepository is a mock implementation of RoomRepository
type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *tenancy.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *tenancy.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByNumber(ctx context.Context, number string) (*tenancy.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context, filter tenancy.RoomFilter) ([]*tenancy.Room, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*tenancy.Room), args.Get(1).(int64), args.Error(2)
}

func (m *MockRoomRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	args := m.Called(ctx, number)
	return args.Bool(0), args.Error(1)
}

func (m *MockRoomRepository) Claim(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

func (m *MockRoomRepository) Release(ctx context.Context, number string) error {
	args := m.Called(ctx, number)
	return args.Error(0)
}

// MockTenantRepository is a mock implementation of TenantRepository
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *tenancy.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByUsername(ctx context.Context, username string) (*tenancy.Tenant, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindByRoomNumber(ctx context.Context, number string) (*tenancy.Tenant, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tenancy.Tenant), args.Error(1)
}

func (m *MockTenantRepository) FindAll(ctx context.Context, filter tenancy.TenantFilter) ([]*tenancy.Tenant, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*tenancy.Tenant), args.Get(1).(int64), args.Error(2)
}

func (m *MockTenantRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// fakeAtomic runs the scope function directly against the mock repositories,
// without transaction semantics
type fakeAtomic struct {
	scope coordinator.Scope
}

func (f *fakeAtomic) Atomic(_ context.Context, fn func(scope coordinator.Scope) error) error {
	return fn(f.scope)
}

func newTenantServiceWithMocks() (*TenantService, *MockTenantRepository, *MockRoomRepository) {
	tenantRepo := new(MockTenantRepository)
	roomRepo := new(MockRoomRepository)
	atomic := &fakeAtomic{scope: coordinator.Scope{Rooms: roomRepo, Tenants: tenantRepo}}
	return NewTenantService(tenantRepo, roomRepo, atomic), tenantRepo, roomRepo
}

func testTenant(t *testing.T, username string, roomNumber *string) *tenancy.Tenant {
	t.Helper()

	tenant, err := tenancy.NewTenant(username, "secret-password", tenancy.RoleUser)
	require.NoError(t, err)
	if roomNumber != nil {
		tenant.BindRoom(*roomNumber)
	}
	return tenant
}

// =============================================================================
// Tests
// =============================================================================

func TestTenantService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates unbound tenant", func(t *testing.T) {
		svc, tenantRepo, _ := newTenantServiceWithMocks()

		tenantRepo.On("ExistsByUsername", ctx, "somchai").Return(false, nil)
		tenantRepo.On("Create", ctx, mock.AnythingOfType("*tenancy.Tenant")).Return(nil)

		resp, err := svc.Create(ctx, CreateTenantRequest{Username: "Somchai", Password: "secret-password"})

		require.NoError(t, err)
		assert.Equal(t, "somchai", resp.Username)
		assert.Equal(t, "user", resp.Role)
		assert.Nil(t, resp.RoomNumber)
		tenantRepo.AssertExpectations(t)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		svc, tenantRepo, _ := newTenantServiceWithMocks()

		tenantRepo.On("ExistsByUsername", ctx, "somchai").Return(true, nil)

		_, err := svc.Create(ctx, CreateTenantRequest{Username: "somchai", Password: "secret-password"})

		assert.ErrorIs(t, err, tenancy.ErrDuplicateUsername)
	})

	t.Run("claims room when one is requested", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		number := "101"

		tenantRepo.On("ExistsByUsername", ctx, "somchai").Return(false, nil)
		roomRepo.On("Claim", ctx, "101").Return(nil)
		tenantRepo.On("Create", ctx, mock.AnythingOfType("*tenancy.Tenant")).Return(nil)

		resp, err := svc.Create(ctx, CreateTenantRequest{
			Username:   "somchai",
			Password:   "secret-password",
			RoomNumber: &number,
		})

		require.NoError(t, err)
		require.NotNil(t, resp.RoomNumber)
		assert.Equal(t, "101", *resp.RoomNumber)
		roomRepo.AssertExpectations(t)
	})

	t.Run("surfaces occupied room", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		number := "101"

		tenantRepo.On("ExistsByUsername", ctx, "somchai").Return(false, nil)
		roomRepo.On("Claim", ctx, "101").Return(tenancy.ErrRoomOccupied)

		_, err := svc.Create(ctx, CreateTenantRequest{
			Username:   "somchai",
			Password:   "secret-password",
			RoomNumber: &number,
		})

		assert.ErrorIs(t, err, tenancy.ErrRoomOccupied)
		tenantRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTenantService_Update_RoomMoves(t *testing.T) {
	ctx := context.Background()

	t.Run("rebinding the tenant's own room is a no-op on occupancy", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		number := "101"
		tenant := testTenant(t, "somchai", &number)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		tenantRepo.On("Update", ctx, tenant).Return(nil)

		resp, err := svc.Update(ctx, tenant.ID, UpdateTenantRequest{RoomNumber: &number})

		require.NoError(t, err)
		assert.Equal(t, "101", *resp.RoomNumber)
		roomRepo.AssertNotCalled(t, "Claim", mock.Anything, mock.Anything)
		roomRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
	})

	t.Run("moving claims the new room then releases the old", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		old := "101"
		tenant := testTenant(t, "somchai", &old)
		target := "202"

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		roomRepo.On("Claim", ctx, "202").Return(nil)
		roomRepo.On("Release", ctx, "101").Return(nil)
		tenantRepo.On("Update", ctx, tenant).Return(nil)

		resp, err := svc.Update(ctx, tenant.ID, UpdateTenantRequest{RoomNumber: &target})

		require.NoError(t, err)
		assert.Equal(t, "202", *resp.RoomNumber)
		roomRepo.AssertExpectations(t)
	})

	t.Run("move to occupied room fails and keeps the old binding", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		old := "101"
		tenant := testTenant(t, "somchai", &old)
		target := "202"

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		roomRepo.On("Claim", ctx, "202").Return(tenancy.ErrRoomOccupied)

		_, err := svc.Update(ctx, tenant.ID, UpdateTenantRequest{RoomNumber: &target})

		assert.ErrorIs(t, err, tenancy.ErrRoomOccupied)
		roomRepo.AssertNotCalled(t, "Release", mock.Anything, mock.Anything)
		tenantRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("move to unknown room reports the room as missing", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		tenant := testTenant(t, "somchai", nil)
		target := "999"

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		roomRepo.On("Claim", ctx, "999").Return(shared.ErrNotFound)

		_, err := svc.Update(ctx, tenant.ID, UpdateTenantRequest{RoomNumber: &target})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Contains(t, domainErr.Message, "Room")
	})

	t.Run("empty room number releases the binding", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		old := "101"
		tenant := testTenant(t, "somchai", &old)
		empty := ""

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		roomRepo.On("Release", ctx, "101").Return(nil)
		tenantRepo.On("Update", ctx, tenant).Return(nil)

		resp, err := svc.Update(ctx, tenant.ID, UpdateTenantRequest{RoomNumber: &empty})

		require.NoError(t, err)
		assert.Nil(t, resp.RoomNumber)
		roomRepo.AssertExpectations(t)
	})
}

func TestTenantService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the room when bound", func(t *testing.T) {
		svc, tenantRepo, roomRepo := newTenantServiceWithMocks()
		number := "101"
		tenant := testTenant(t, "somchai", &number)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		roomRepo.On("Release", ctx, "101").Return(nil)
		tenantRepo.On("Delete", ctx, tenant.ID).Return(nil)

		require.NoError(t, svc.Delete(ctx, tenant.ID))
		roomRepo.AssertExpectations(t)
		tenantRepo.AssertExpectations(t)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		svc, tenantRepo, _ := newTenantServiceWithMocks()
		id := uuid.New()

		tenantRepo.On("FindByID", ctx, id).Return(nil, nil)

		err := svc.Delete(ctx, id)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
	})
}

func TestTenantService_ChangePassword(t *testing.T) {
	ctx := context.Background()

	t.Run("verifies the current password", func(t *testing.T) {
		svc, tenantRepo, _ := newTenantServiceWithMocks()
		tenant := testTenant(t, "somchai", nil)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)

		err := svc.ChangePassword(ctx, tenant.ID, ChangePasswordRequest{
			CurrentPassword: "wrong-password",
			NewPassword:     "brand-new-password",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("changes with correct current password", func(t *testing.T) {
		svc, tenantRepo, _ := newTenantServiceWithMocks()
		tenant := testTenant(t, "somchai", nil)

		tenantRepo.On("FindByID", ctx, tenant.ID).Return(tenant, nil)
		tenantRepo.On("Update", ctx, tenant).Return(nil)

		err := svc.ChangePassword(ctx, tenant.ID, ChangePasswordRequest{
			CurrentPassword: "secret-password",
			NewPassword:     "brand-new-password",
		})

		require.NoError(t, err)
		assert.True(t, tenant.VerifyPassword("brand-new-password"))
	})
}

func TestRoomService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("creates room", func(t *testing.T) {
		roomRepo := new(MockRoomRepository)
		tenantRepo := new(MockTenantRepository)
		svc := NewRoomService(roomRepo, tenantRepo)

		roomRepo.On("ExistsByNumber", ctx, "101").Return(false, nil)
		roomRepo.On("Create", ctx, mock.AnythingOfType("*tenancy.Room")).Return(nil)

		resp, err := svc.Create(ctx, CreateRoomRequest{Number: "101", Rent: decimal.NewFromInt(2500)})

		require.NoError(t, err)
		assert.Equal(t, "101", resp.Number)
		assert.Equal(t, "available", resp.Status)
	})

	t.Run("rejects duplicate number", func(t *testing.T) {
		roomRepo := new(MockRoomRepository)
		svc := NewRoomService(roomRepo, new(MockTenantRepository))

		roomRepo.On("ExistsByNumber", ctx, "101").Return(true, nil)

		_, err := svc.Create(ctx, CreateRoomRequest{Number: "101"})

		assert.ErrorIs(t, err, tenancy.ErrDuplicateRoomNumber)
	})

	t.Run("refuses to delete occupied room", func(t *testing.T) {
		roomRepo := new(MockRoomRepository)
		svc := NewRoomService(roomRepo, new(MockTenantRepository))

		room, err := tenancy.NewRoom("101", decimal.NewFromInt(2500), "")
		require.NoError(t, err)
		room.Status = tenancy.RoomStatusOccupied

		roomRepo.On("FindByID", ctx, room.ID).Return(room, nil)

		err = svc.Delete(ctx, room.ID)

		assert.ErrorIs(t, err, tenancy.ErrRoomOccupied)
		roomRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
