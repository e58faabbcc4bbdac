package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/billing"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRecordRepository implements PaymentRecordRepository using GORM.
// The table is append-only; no update path exists.
type GormPaymentRecordRepository struct {
	db *gorm.DB
}

// NewGormPaymentRecordRepository creates a new GormPaymentRecordRepository
func NewGormPaymentRecordRepository(db *gorm.DB) *GormPaymentRecordRepository {
	return &GormPaymentRecordRepository{db: db}
}

// Append inserts a payment record
func (r *GormPaymentRecordRepository) Append(ctx context.Context, record *billing.PaymentRecord) error {
	model := models.PaymentRecordModelFromDomain(record)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByBill finds all payment records for a bill, newest first
func (r *GormPaymentRecordRepository) FindByBill(ctx context.Context, billID uuid.UUID) ([]*billing.PaymentRecord, error) {
	var recordModels []models.PaymentRecordModel
	if err := r.db.WithContext(ctx).
		Where("bill_id = ?", billID).
		Order("paid_date DESC").
		Find(&recordModels).Error; err != nil {
		return nil, err
	}

	records := make([]*billing.PaymentRecord, len(recordModels))
	for i := range recordModels {
		records[i] = recordModels[i].ToDomain()
	}
	return records, nil
}

// paymentHistoryRow is the flattened result of the payment-history join.
type paymentHistoryRow struct {
	ID            uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
	BillID        uuid.UUID
	Amount        decimal.Decimal
	PaidDate      time.Time
	SlipReference *string
	RoomNumber    string
	DueDate       time.Time
}

// HistoryForTenant joins payment records with their bills for the given
// tenant in a single query, newest payment first.
func (r *GormPaymentRecordRepository) HistoryForTenant(ctx context.Context, tenantID uuid.UUID) ([]*billing.PaymentEntry, error) {
	var rows []paymentHistoryRow
	if err := r.db.WithContext(ctx).
		Table("payment_records").
		Select("payment_records.id, payment_records.created_at, payment_records.updated_at, "+
			"payment_records.bill_id, payment_records.amount, payment_records.paid_date, "+
			"payment_records.slip_reference, bills.room_number, bills.due_date").
		Joins("JOIN bills ON bills.id = payment_records.bill_id").
		Where("bills.tenant_id = ?", tenantID).
		Order("payment_records.paid_date DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]*billing.PaymentEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &billing.PaymentEntry{
			Record: billing.PaymentRecord{
				BaseEntity: shared.BaseEntity{
					ID:        row.ID,
					CreatedAt: row.CreatedAt,
					UpdatedAt: row.UpdatedAt,
				},
				BillID:        row.BillID,
				Amount:        row.Amount,
				PaidDate:      row.PaidDate,
				SlipReference: row.SlipReference,
			},
			RoomNumber: row.RoomNumber,
			DueDate:    row.DueDate,
		})
	}
	return entries, nil
}

// Ensure GormPaymentRecordRepository implements PaymentRecordRepository
var _ billing.PaymentRecordRepository = (*GormPaymentRecordRepository)(nil)
