package billing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment state of a bill
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

// Bill represents one billing period's charge for a room: the rent snapshot
// taken at creation time plus metered water and electricity usage.
// Unpaid -> Paid is the only supported transition.
type Bill struct {
	shared.BaseAggregateRoot
	TenantID         uuid.UUID
	RoomNumber       string
	WaterUnits       decimal.Decimal
	ElectricityUnits decimal.Decimal
	WaterRate        decimal.Decimal
	ElectricityRate  decimal.Decimal
	RentAmount       decimal.Decimal // snapshot of the room's rent; never re-read
	TotalAmount      decimal.Decimal
	DueDate          time.Time
	MeterReading     *string
	SlipReference    *string
	PaymentStatus    PaymentStatus
	PaidDate         *time.Time
}

// NewBillInput carries the values needed to open a bill. RentSnapshot must be
// the owning room's rent at creation time.
type NewBillInput struct {
	TenantID         uuid.UUID
	RoomNumber       string
	RentSnapshot     decimal.Decimal
	WaterUnits       decimal.Decimal
	ElectricityUnits decimal.Decimal
	WaterRate        decimal.Decimal
	ElectricityRate  decimal.Decimal
	DueDate          time.Time
	MeterReading     *string
}

// NewBill creates an unpaid bill and computes its total once
func NewBill(input NewBillInput) (*Bill, error) {
	if input.TenantID == uuid.Nil {
		return nil, shared.NewInvalidInputError("tenant_id", "is required")
	}
	if strings.TrimSpace(input.RoomNumber) == "" {
		return nil, shared.NewInvalidInputError("room_number", "is required")
	}
	if input.DueDate.IsZero() {
		return nil, shared.NewInvalidInputError("due_date", "is required")
	}
	if err := validateCharges(input.RentSnapshot, input.WaterUnits, input.ElectricityUnits, input.WaterRate, input.ElectricityRate); err != nil {
		return nil, err
	}

	bill := &Bill{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TenantID:          input.TenantID,
		RoomNumber:        strings.TrimSpace(input.RoomNumber),
		WaterUnits:        input.WaterUnits,
		ElectricityUnits:  input.ElectricityUnits,
		WaterRate:         input.WaterRate,
		ElectricityRate:   input.ElectricityRate,
		RentAmount:        input.RentSnapshot,
		DueDate:           input.DueDate,
		MeterReading:      input.MeterReading,
		PaymentStatus:     PaymentStatusUnpaid,
	}
	bill.recomputeTotal()
	return bill, nil
}

// SetUsage updates the metered units and recomputes the total under the
// snapshot rent. Editing usage never re-reads the room's current rent.
func (b *Bill) SetUsage(waterUnits, electricityUnits decimal.Decimal) error {
	if waterUnits.IsNegative() || electricityUnits.IsNegative() {
		return shared.NewInvalidInputError("units", "must not be negative")
	}
	b.WaterUnits = waterUnits
	b.ElectricityUnits = electricityUnits
	b.recomputeTotal()
	b.Touch()
	return nil
}

// SetRates updates the utility rates and recomputes the total
func (b *Bill) SetRates(waterRate, electricityRate decimal.Decimal) error {
	if waterRate.IsNegative() || electricityRate.IsNegative() {
		return shared.NewInvalidInputError("rates", "must not be negative")
	}
	b.WaterRate = waterRate
	b.ElectricityRate = electricityRate
	b.recomputeTotal()
	b.Touch()
	return nil
}

// SetDueDate changes the bill's due date
func (b *Bill) SetDueDate(due time.Time) error {
	if due.IsZero() {
		return shared.NewInvalidInputError("due_date", "is required")
	}
	b.DueDate = due
	b.Touch()
	return nil
}

// SetMeterReading attaches or replaces the meter reading reference
func (b *Bill) SetMeterReading(reading string) {
	r := strings.TrimSpace(reading)
	b.MeterReading = &r
	b.Touch()
}

// SetSlipReference attaches or replaces the payment slip reference
func (b *Bill) SetSlipReference(ref string) {
	r := strings.TrimSpace(ref)
	b.SlipReference = &r
	b.Touch()
}

// MarkPaid transitions the bill to paid. It reports whether the state
// actually changed: marking an already-paid bill is a no-op and must not
// produce another payment record.
func (b *Bill) MarkPaid(paidDate time.Time) bool {
	if b.PaymentStatus == PaymentStatusPaid {
		return false
	}
	if paidDate.IsZero() {
		paidDate = time.Now()
	}
	b.PaymentStatus = PaymentStatusPaid
	b.PaidDate = &paidDate
	b.Touch()
	return true
}

// IsPaid reports whether the bill has been settled
func (b *Bill) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// recomputeTotal applies the billing formula:
// waterUnits*waterRate + electricityUnits*electricityRate + rent snapshot.
func (b *Bill) recomputeTotal() {
	b.TotalAmount = b.WaterUnits.Mul(b.WaterRate).
		Add(b.ElectricityUnits.Mul(b.ElectricityRate)).
		Add(b.RentAmount)
}

func validateCharges(values ...decimal.Decimal) error {
	for _, v := range values {
		if v.IsNegative() {
			return shared.NewInvalidInputError("amount", "must not be negative")
		}
	}
	return nil
}
