package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/billing"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBillRepository implements BillRepository using GORM
type GormBillRepository struct {
	db *gorm.DB
}

// NewGormBillRepository creates a new GormBillRepository
func NewGormBillRepository(db *gorm.DB) *GormBillRepository {
	return &GormBillRepository{db: db}
}

// Create inserts a new bill
func (r *GormBillRepository) Create(ctx context.Context, bill *billing.Bill) error {
	model := models.BillModelFromDomain(bill)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves changes to an existing bill with optimistic locking.
// Select("*") writes nil-able columns (slip_reference, meter_reading)
// through. The payment columns are never written here: the unpaid->paid
// transition belongs exclusively to MarkPaid, so a stale in-memory copy can
// never revert a committed settlement.
func (r *GormBillRepository) Update(ctx context.Context, bill *billing.Bill) error {
	currentVersion := bill.Version
	bill.IncrementVersion()

	model := models.BillModelFromDomain(bill)
	result := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("id = ? AND version = ?", bill.ID, currentVersion).
		Select("*").Omit("id", "created_at", "payment_status", "paid_date").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.BillModel{}).
			Where("id = ?", bill.ID).
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

// Delete removes a bill and its payment records
func (r *GormBillRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.PaymentRecordModel{}, "bill_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.BillModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a bill by its ID
func (r *GormBillRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Bill, error) {
	var model models.BillModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds bills matching the filter along with the unpaged total
func (r *GormBillRepository) FindAll(ctx context.Context, filter billing.BillFilter) ([]*billing.Bill, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.BillModel{})
	if filter.TenantID != nil {
		query = query.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.RoomNumber != nil {
		query = query.Where("room_number = ?", *filter.RoomNumber)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.Search != "" {
		query = query.Where("room_number LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	orderBy := ValidateSortField(filter.OrderBy, BillSortFields, "due_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	var billModels []models.BillModel
	if err := query.Find(&billModels).Error; err != nil {
		return nil, 0, err
	}

	bills := make([]*billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills, total, nil
}

// FindByRoom finds bills for a room, newest due date first
func (r *GormBillRepository) FindByRoom(ctx context.Context, roomNumber string, includeSettled bool) ([]*billing.Bill, error) {
	query := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("room_number = ?", roomNumber)
	if !includeSettled {
		query = query.Where("payment_status = ?", billing.PaymentStatusUnpaid)
	}

	var billModels []models.BillModel
	if err := query.Order("due_date DESC").Find(&billModels).Error; err != nil {
		return nil, err
	}

	bills := make([]*billing.Bill, len(billModels))
	for i := range billModels {
		bills[i] = billModels[i].ToDomain()
	}
	return bills, nil
}

// MarkPaid conditionally transitions a bill to paid. The status guard in the
// WHERE clause makes concurrent settlements of the same bill resolve to one
// effective transition; the loser observes changed=false.
func (r *GormBillRepository) MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.BillModel{}).
		Where("id = ? AND payment_status <> ?", id, billing.PaymentStatusPaid).
		Updates(map[string]interface{}{
			"payment_status": billing.PaymentStatusPaid,
			"paid_date":      paidDate,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.BillModel{}).
			Where("id = ?", id).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count == 0 {
			return false, shared.ErrNotFound
		}
		return false, nil
	}
	return true, nil
}

// Ensure GormBillRepository implements BillRepository
var _ billing.BillRepository = (*GormBillRepository)(nil)
