package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// BillFilter represents filter options for listing bills
type BillFilter struct {
	shared.Filter
	TenantID      *uuid.UUID
	RoomNumber    *string
	PaymentStatus *PaymentStatus
}

// PaymentEntry is one row of a tenant's payment history: the settled bill
// joined with its audit record.
type PaymentEntry struct {
	Record     PaymentRecord
	RoomNumber string
	DueDate    time.Time
}

// BillRepository defines persistence operations for bills.
// Find methods return (nil, nil) when no row matches.
type BillRepository interface {
	Create(ctx context.Context, bill *Bill) error
	Update(ctx context.Context, bill *Bill) error

	// Delete removes the bill and cascades to its payment records.
	Delete(ctx context.Context, id uuid.UUID) error

	FindByID(ctx context.Context, id uuid.UUID) (*Bill, error)
	FindAll(ctx context.Context, filter BillFilter) ([]*Bill, int64, error)
	FindByRoom(ctx context.Context, roomNumber string, includeSettled bool) ([]*Bill, error)

	// MarkPaid conditionally transitions a bill to paid in a single
	// statement guarded on the current status. It reports whether the row
	// changed: false means the bill was already paid (idempotent no-op).
	// shared.ErrNotFound when no such bill exists.
	MarkPaid(ctx context.Context, id uuid.UUID, paidDate time.Time) (bool, error)
}

// PaymentRecordRepository defines persistence operations for the append-only
// payment history.
type PaymentRecordRepository interface {
	Append(ctx context.Context, record *PaymentRecord) error
	FindByBill(ctx context.Context, billID uuid.UUID) ([]*PaymentRecord, error)

	// HistoryForTenant joins payment records with their bills for the given
	// tenant, newest payment first.
	HistoryForTenant(ctx context.Context, tenantID uuid.UUID) ([]*PaymentEntry, error)
}
