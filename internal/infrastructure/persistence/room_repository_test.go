package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(models.AllModels()...)
	require.NoError(t, err)

	return db
}

func createTestRoom(t *testing.T, repo *GormRoomRepository, number string) *tenancy.Room {
	t.Helper()

	room, err := tenancy.NewRoom(number, decimal.NewFromInt(2500), "corner unit")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), room))
	return room
}

func TestGormRoomRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, repo, "101")

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, room.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "101", found.Number)
		assert.True(t, decimal.NewFromInt(2500).Equal(found.Rent))
		assert.Equal(t, tenancy.RoomStatusAvailable, found.Status)
	})

	t.Run("finds by number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "101")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, room.ID, found.ID)
	})

	t.Run("returns nil for unknown id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("returns nil for unknown number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "999")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestGormRoomRepository_ExistsByNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	createTestRoom(t, repo, "102")

	exists, err := repo.ExistsByNumber(ctx, "102")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNumber(ctx, "103")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormRoomRepository_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("claims an available room", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormRoomRepository(db)
		createTestRoom(t, repo, "201")

		err := repo.Claim(ctx, "201")
		require.NoError(t, err)

		found, err := repo.FindByNumber(ctx, "201")
		require.NoError(t, err)
		assert.Equal(t, tenancy.RoomStatusOccupied, found.Status)
	})

	t.Run("second claim fails with occupied", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormRoomRepository(db)
		createTestRoom(t, repo, "202")

		require.NoError(t, repo.Claim(ctx, "202"))

		err := repo.Claim(ctx, "202")
		assert.ErrorIs(t, err, tenancy.ErrRoomOccupied)
	})

	t.Run("claim of unknown room fails with not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormRoomRepository(db)

		err := repo.Claim(ctx, "999")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormRoomRepository_Release(t *testing.T) {
	ctx := context.Background()

	t.Run("releases an occupied room", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormRoomRepository(db)
		createTestRoom(t, repo, "301")
		require.NoError(t, repo.Claim(ctx, "301"))

		require.NoError(t, repo.Release(ctx, "301"))

		found, err := repo.FindByNumber(ctx, "301")
		require.NoError(t, err)
		assert.Equal(t, tenancy.RoomStatusAvailable, found.Status)
	})

	t.Run("releasing an available room is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormRoomRepository(db)
		createTestRoom(t, repo, "302")

		require.NoError(t, repo.Release(ctx, "302"))
	})

	t.Run("releasing an unknown room is a no-op", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewGormRoomRepository(db)

		require.NoError(t, repo.Release(ctx, "999"))
	})
}

func TestGormRoomRepository_FindAll(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	createTestRoom(t, repo, "401")
	createTestRoom(t, repo, "402")
	createTestRoom(t, repo, "403")
	require.NoError(t, repo.Claim(ctx, "402"))

	t.Run("lists all rooms", func(t *testing.T) {
		rooms, total, err := repo.FindAll(ctx, tenancy.RoomFilter{Filter: shared.DefaultFilter()})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, rooms, 3)
	})

	t.Run("filters by status", func(t *testing.T) {
		status := tenancy.RoomStatusOccupied
		rooms, total, err := repo.FindAll(ctx, tenancy.RoomFilter{
			Filter: shared.DefaultFilter(),
			Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rooms, 1)
		assert.Equal(t, "402", rooms[0].Number)
	})

	t.Run("paginates", func(t *testing.T) {
		filter := tenancy.RoomFilter{Filter: shared.Filter{Page: 1, PageSize: 2, OrderBy: "number", OrderDir: "asc"}}
		rooms, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, rooms, 2)
		assert.Equal(t, "401", rooms[0].Number)
	})
}

func TestGormRoomRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, repo, "501")
	require.NoError(t, room.ChangeRent(decimal.NewFromInt(3000)))

	require.NoError(t, repo.Update(ctx, room))

	found, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3000).Equal(found.Rent))
}

func TestGormRoomRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormRoomRepository(db)
	ctx := context.Background()

	room := createTestRoom(t, repo, "601")

	require.NoError(t, repo.Delete(ctx, room.ID))

	found, err := repo.FindByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.Delete(ctx, room.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
