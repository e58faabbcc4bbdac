package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill domain entity.
type BillModel struct {
	AggregateModel
	TenantID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	RoomNumber       string                `gorm:"type:varchar(20);not null;index"`
	WaterUnits       decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	ElectricityUnits decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	WaterRate        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	ElectricityRate  decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	RentAmount       decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount      decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate          time.Time             `gorm:"not null;index"`
	MeterReading     *string               `gorm:"type:text"`
	SlipReference    *string               `gorm:"type:varchar(500)"`
	PaymentStatus    billing.PaymentStatus `gorm:"type:varchar(20);not null;default:'unpaid';index"`
	PaidDate         *time.Time
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill entity.
func (m *BillModel) ToDomain() *billing.Bill {
	return &billing.Bill{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		TenantID:          m.TenantID,
		RoomNumber:        m.RoomNumber,
		WaterUnits:        m.WaterUnits,
		ElectricityUnits:  m.ElectricityUnits,
		WaterRate:         m.WaterRate,
		ElectricityRate:   m.ElectricityRate,
		RentAmount:        m.RentAmount,
		TotalAmount:       m.TotalAmount,
		DueDate:           m.DueDate,
		MeterReading:      m.MeterReading,
		SlipReference:     m.SlipReference,
		PaymentStatus:     m.PaymentStatus,
		PaidDate:          m.PaidDate,
	}
}

// FromDomain populates the persistence model from a domain Bill entity.
func (m *BillModel) FromDomain(b *billing.Bill) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.TenantID = b.TenantID
	m.RoomNumber = b.RoomNumber
	m.WaterUnits = b.WaterUnits
	m.ElectricityUnits = b.ElectricityUnits
	m.WaterRate = b.WaterRate
	m.ElectricityRate = b.ElectricityRate
	m.RentAmount = b.RentAmount
	m.TotalAmount = b.TotalAmount
	m.DueDate = b.DueDate
	m.MeterReading = b.MeterReading
	m.SlipReference = b.SlipReference
	m.PaymentStatus = b.PaymentStatus
	m.PaidDate = b.PaidDate
}

// BillModelFromDomain creates a new persistence model from a domain Bill entity.
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{}
	m.FromDomain(b)
	return m
}

// PaymentRecordModel is the persistence model for the append-only payment
// history. Records are never updated after insert.
type PaymentRecordModel struct {
	BaseModel
	BillID        uuid.UUID       `gorm:"type:uuid;not null;index;constraint:OnDelete:CASCADE"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidDate      time.Time       `gorm:"not null;index"`
	SlipReference *string         `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (PaymentRecordModel) TableName() string {
	return "payment_records"
}

// ToDomain converts the persistence model to a domain PaymentRecord entity.
func (m *PaymentRecordModel) ToDomain() *billing.PaymentRecord {
	return &billing.PaymentRecord{
		BaseEntity:    m.BaseModel.ToDomain(),
		BillID:        m.BillID,
		Amount:        m.Amount,
		PaidDate:      m.PaidDate,
		SlipReference: m.SlipReference,
	}
}

// FromDomain populates the persistence model from a domain PaymentRecord entity.
func (m *PaymentRecordModel) FromDomain(r *billing.PaymentRecord) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.BillID = r.BillID
	m.Amount = r.Amount
	m.PaidDate = r.PaidDate
	m.SlipReference = r.SlipReference
}

// PaymentRecordModelFromDomain creates a new persistence model from a domain PaymentRecord entity.
func PaymentRecordModelFromDomain(r *billing.PaymentRecord) *PaymentRecordModel {
	m := &PaymentRecordModel{}
	m.FromDomain(r)
	return m
}
