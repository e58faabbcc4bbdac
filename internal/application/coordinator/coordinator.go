// Package coordinator provides transactional scopes for operations that must
// mutate several aggregates together, such as binding a tenant to a room or
// settling a bill while appending its payment record.
package coordinator

import (
	"context"

	"github.com/rently/backend/internal/domain/billing"
	"github.com/rently/backend/internal/domain/tenancy"
	"gorm.io/gorm"
)

// Scope bundles repositories bound to one transaction. Everything done
// through a scope commits or rolls back as a unit.
type Scope struct {
	Rooms    tenancy.RoomRepository
	Tenants  tenancy.TenantRepository
	Bills    billing.BillRepository
	Payments billing.PaymentRecordRepository
}

// ScopeFactory builds a Scope whose repositories run on the given transaction
type ScopeFactory func(tx *gorm.DB) Scope

// Atomic runs multi-aggregate mutations in a single transaction
type Atomic interface {
	Atomic(ctx context.Context, fn func(scope Scope) error) error
}

// Coordinator implements Atomic on a gorm connection
type Coordinator struct {
	db      *gorm.DB
	factory ScopeFactory
}

// New creates a Coordinator
func New(db *gorm.DB, factory ScopeFactory) *Coordinator {
	return &Coordinator{db: db, factory: factory}
}

// Atomic executes fn inside a database transaction. A returned error rolls
// everything back, including conditional writes that already succeeded.
func (c *Coordinator) Atomic(ctx context.Context, fn func(scope Scope) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(c.factory(tx))
	})
}

var _ Atomic = (*Coordinator)(nil)
