package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentRecord is an append-only audit entry created exactly once per
// bill's unpaid->paid transition. Records are never updated; they are
// removed only when the owning bill is deleted.
type PaymentRecord struct {
	shared.BaseEntity
	BillID        uuid.UUID
	Amount        decimal.Decimal
	PaidDate      time.Time
	SlipReference *string
}

// NewPaymentRecord creates the audit entry for a bill's paid transition.
// Amount and slip reference are taken from the bill as of the transition.
func NewPaymentRecord(bill *Bill) (*PaymentRecord, error) {
	if bill == nil || bill.PaidDate == nil {
		return nil, shared.NewDomainError("INVALID_STATE", "Payment record requires a paid bill")
	}
	return &PaymentRecord{
		BaseEntity:    shared.NewBaseEntity(),
		BillID:        bill.ID,
		Amount:        bill.TotalAmount,
		PaidDate:      *bill.PaidDate,
		SlipReference: bill.SlipReference,
	}, nil
}
