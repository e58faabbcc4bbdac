package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRoomRepository implements RoomRepository using GORM
type GormRoomRepository struct {
	db *gorm.DB
}

// NewGormRoomRepository creates a new GormRoomRepository
func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{db: db}
}

// Create inserts a new room
func (r *GormRoomRepository) Create(ctx context.Context, room *tenancy.Room) error {
	model := models.RoomModelFromDomain(room)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves changes to an existing room with optimistic locking. The
// status column is never written here: occupancy is owned by Claim/Release,
// so a stale in-memory copy can never revert a concurrent claim.
func (r *GormRoomRepository) Update(ctx context.Context, room *tenancy.Room) error {
	currentVersion := room.Version
	room.IncrementVersion()

	model := models.RoomModelFromDomain(room)
	result := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("id = ? AND version = ?", room.ID, currentVersion).
		Select("*").Omit("id", "created_at", "status").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.RoomModel{}).
			Where("id = ?", room.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a room
func (r *GormRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.RoomModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a room by its ID
func (r *GormRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenancy.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a room by its business number
func (r *GormRoomRepository) FindByNumber(ctx context.Context, number string) (*tenancy.Room, error) {
	var model models.RoomModel
	if err := r.db.WithContext(ctx).First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds rooms matching the filter along with the unpaged total
func (r *GormRoomRepository) FindAll(ctx context.Context, filter tenancy.RoomFilter) ([]*tenancy.Room, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.RoomModel{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, RoomSortFields, "number")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var roomModels []models.RoomModel
	if err := query.Find(&roomModels).Error; err != nil {
		return nil, 0, err
	}

	rooms := make([]*tenancy.Room, len(roomModels))
	for i := range roomModels {
		rooms[i] = roomModels[i].ToDomain()
	}
	return rooms, total, nil
}

// ExistsByNumber checks if a room with the given number exists
func (r *GormRoomRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("number = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Claim conditionally marks an available room occupied. The status guard in
// the WHERE clause makes two racing claims resolve to one success.
func (r *GormRoomRepository) Claim(ctx context.Context, number string) error {
	result := r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("number = ? AND status = ?", number, tenancy.RoomStatusAvailable).
		Updates(map[string]interface{}{
			"status":     tenancy.RoomStatusOccupied,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		exists, err := r.ExistsByNumber(ctx, number)
		if err != nil {
			return err
		}
		if !exists {
			return shared.ErrNotFound
		}
		return tenancy.ErrRoomOccupied
	}
	return nil
}

// Release marks a room available. Releasing an already-available or unknown
// room is a no-op.
func (r *GormRoomRepository) Release(ctx context.Context, number string) error {
	return r.db.WithContext(ctx).
		Model(&models.RoomModel{}).
		Where("number = ? AND status = ?", number, tenancy.RoomStatusOccupied).
		Updates(map[string]interface{}{
			"status":     tenancy.RoomStatusAvailable,
			"updated_at": time.Now(),
		}).Error
}

// Ensure GormRoomRepository implements RoomRepository
var _ tenancy.RoomRepository = (*GormRoomRepository)(nil)
