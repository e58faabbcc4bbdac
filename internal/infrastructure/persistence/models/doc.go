// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Key Principles:
// 1. Domain entities should be free of GORM tags and infrastructure concerns
// 2. Persistence models contain all GORM annotations and table mappings
// 3. Mappers convert between domain entities and persistence models
// 4. Repositories use persistence models for database operations
//
// Structure:
// - base.go: Base persistence models (BaseModel, AggregateModel)
// - tenancy.go: Room and tenant account models
// - billing.go: Bill and payment record models
// - maintenance.go: Maintenance request model
// - bulletin.go: Announcement model
package models

// AllModels lists every persistence model for schema migration in tests and
// local setups. Production schemas are managed by SQL migrations.
func AllModels() []interface{} {
	return []interface{}{
		&RoomModel{},
		&TenantModel{},
		&BillModel{},
		&PaymentRecordModel{},
		&MaintenanceRequestModel{},
		&AnnouncementModel{},
	}
}
