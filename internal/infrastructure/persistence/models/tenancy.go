package models

import (
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/shopspring/decimal"
)

// RoomModel is the persistence model for the Room domain entity.
type RoomModel struct {
	AggregateModel
	Number      string             `gorm:"type:varchar(20);not null;uniqueIndex:idx_rooms_number"`
	Rent        decimal.Decimal    `gorm:"type:decimal(18,2);not null;default:0"`
	Description string             `gorm:"type:text"`
	Status      tenancy.RoomStatus `gorm:"type:varchar(20);not null;default:'available';index"`
}

// TableName returns the table name for GORM
func (RoomModel) TableName() string {
	return "rooms"
}

// ToDomain converts the persistence model to a domain Room entity.
func (m *RoomModel) ToDomain() *tenancy.Room {
	return &tenancy.Room{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Number:            m.Number,
		Rent:              m.Rent,
		Description:       m.Description,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Room entity.
func (m *RoomModel) FromDomain(r *tenancy.Room) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.Number = r.Number
	m.Rent = r.Rent
	m.Description = r.Description
	m.Status = r.Status
}

// RoomModelFromDomain creates a new persistence model from a domain Room entity.
func RoomModelFromDomain(r *tenancy.Room) *RoomModel {
	m := &RoomModel{}
	m.FromDomain(r)
	return m
}

// TenantModel is the persistence model for the Tenant domain entity.
type TenantModel struct {
	AggregateModel
	Username     string             `gorm:"type:varchar(100);not null;uniqueIndex:idx_tenants_username"`
	PasswordHash string             `gorm:"type:varchar(100);not null"`
	FullName     string             `gorm:"type:varchar(200)"`
	Phone        string             `gorm:"type:varchar(50)"`
	LineID       string             `gorm:"type:varchar(100);column:line_id"`
	Role         tenancy.TenantRole `gorm:"type:varchar(20);not null;default:'user';index"`
	RoomNumber   *string            `gorm:"type:varchar(20);uniqueIndex:idx_tenants_room_number"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant entity.
func (m *TenantModel) ToDomain() *tenancy.Tenant {
	return &tenancy.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		FullName:          m.FullName,
		Phone:             m.Phone,
		LineID:            m.LineID,
		Role:              m.Role,
		RoomNumber:        m.RoomNumber,
	}
}

// FromDomain populates the persistence model from a domain Tenant entity.
func (m *TenantModel) FromDomain(t *tenancy.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Username = t.Username
	m.PasswordHash = t.PasswordHash
	m.FullName = t.FullName
	m.Phone = t.Phone
	m.LineID = t.LineID
	m.Role = t.Role
	m.RoomNumber = t.RoomNumber
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant entity.
func TenantModelFromDomain(t *tenancy.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}
