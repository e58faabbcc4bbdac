package models

import (
	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/maintenance"
)

// MaintenanceRequestModel is the persistence model for maintenance requests.
type MaintenanceRequestModel struct {
	BaseModel
	TenantID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	RoomNumber string                    `gorm:"type:varchar(20);not null;index"`
	Title      string                    `gorm:"type:varchar(200);not null"`
	Detail     string                    `gorm:"type:text"`
	Status     maintenance.RequestStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
}

// TableName returns the table name for GORM
func (MaintenanceRequestModel) TableName() string {
	return "maintenance_requests"
}

// ToDomain converts the persistence model to a domain Request entity.
func (m *MaintenanceRequestModel) ToDomain() *maintenance.Request {
	return &maintenance.Request{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		RoomNumber: m.RoomNumber,
		Title:      m.Title,
		Detail:     m.Detail,
		Status:     m.Status,
	}
}

// FromDomain populates the persistence model from a domain Request entity.
func (m *MaintenanceRequestModel) FromDomain(r *maintenance.Request) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.TenantID = r.TenantID
	m.RoomNumber = r.RoomNumber
	m.Title = r.Title
	m.Detail = r.Detail
	m.Status = r.Status
}

// MaintenanceRequestModelFromDomain creates a new persistence model from a domain Request entity.
func MaintenanceRequestModelFromDomain(r *maintenance.Request) *MaintenanceRequestModel {
	m := &MaintenanceRequestModel{}
	m.FromDomain(r)
	return m
}
