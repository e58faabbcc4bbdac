package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/bulletin"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAnnouncementRepository implements AnnouncementRepository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create inserts a new announcement
func (r *GormAnnouncementRepository) Create(ctx context.Context, announcement *bulletin.Announcement) error {
	model := models.AnnouncementModelFromDomain(announcement)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves changes to an existing announcement
func (r *GormAnnouncementRepository) Update(ctx context.Context, announcement *bulletin.Announcement) error {
	model := models.AnnouncementModelFromDomain(announcement)
	result := r.db.WithContext(ctx).Model(model).Where("id = ?", announcement.ID).Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes an announcement
func (r *GormAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AnnouncementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an announcement by its ID
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*bulletin.Announcement, error) {
	var model models.AnnouncementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds announcements, newest publication first by default
func (r *GormAnnouncementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*bulletin.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AnnouncementModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, AnnouncementSortFields, "published_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var announcementModels []models.AnnouncementModel
	if err := query.Find(&announcementModels).Error; err != nil {
		return nil, 0, err
	}

	announcements := make([]*bulletin.Announcement, len(announcementModels))
	for i := range announcementModels {
		announcements[i] = announcementModels[i].ToDomain()
	}
	return announcements, total, nil
}

// Ensure GormAnnouncementRepository implements AnnouncementRepository
var _ bulletin.AnnouncementRepository = (*GormAnnouncementRepository)(nil)
