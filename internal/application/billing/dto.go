package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// CreateBillRequest opens a bill for a room. RoomNumber defaults to the
// tenant's bound room when omitted. Rent is snapshotted from the room at
// creation time; water and electricity rates fall back to the configured
// defaults when omitted.
type CreateBillRequest struct {
	TenantID         uuid.UUID        `json:"tenant_id" binding:"required"`
	RoomNumber       *string          `json:"room_number" binding:"omitempty,max=20"`
	WaterUnits       decimal.Decimal  `json:"water_units"`
	ElectricityUnits decimal.Decimal  `json:"electricity_units"`
	WaterRate        *decimal.Decimal `json:"water_rate"`
	ElectricityRate  *decimal.Decimal `json:"electricity_rate"`
	DueDate          time.Time        `json:"due_date" binding:"required"`
	MeterReading     *string          `json:"meter_reading" binding:"omitempty,max=2000"`
}

// UpdateBillRequest is a merge-patch over an unpaid bill's editable fields.
// Changing units or rates recomputes the total under the original rent
// snapshot.
type UpdateBillRequest struct {
	WaterUnits       *decimal.Decimal `json:"water_units"`
	ElectricityUnits *decimal.Decimal `json:"electricity_units"`
	WaterRate        *decimal.Decimal `json:"water_rate"`
	ElectricityRate  *decimal.Decimal `json:"electricity_rate"`
	DueDate          *time.Time       `json:"due_date"`
	MeterReading     *string          `json:"meter_reading" binding:"omitempty,max=2000"`
	SlipReference    *string          `json:"slip_reference" binding:"omitempty,max=500"`
}

// PayBillRequest settles a bill. PaidDate defaults to now; an attached slip
// reference is stored on both the bill and its payment record.
type PayBillRequest struct {
	PaidDate      *time.Time `json:"paid_date"`
	SlipReference *string    `json:"slip_reference" binding:"omitempty,max=500"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID               uuid.UUID       `json:"id"`
	TenantID         uuid.UUID       `json:"tenant_id"`
	RoomNumber       string          `json:"room_number"`
	WaterUnits       decimal.Decimal `json:"water_units"`
	ElectricityUnits decimal.Decimal `json:"electricity_units"`
	WaterRate        decimal.Decimal `json:"water_rate"`
	ElectricityRate  decimal.Decimal `json:"electricity_rate"`
	RentAmount       decimal.Decimal `json:"rent_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DueDate          time.Time       `json:"due_date"`
	MeterReading     *string         `json:"meter_reading,omitempty"`
	SlipReference    *string         `json:"slip_reference,omitempty"`
	PaymentStatus    string          `json:"payment_status"`
	PaidDate         *time.Time      `json:"paid_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// PayBillResponse reports the settled bill and whether this call performed
// the transition. AlreadyPaid is true when the bill was settled earlier.
type PayBillResponse struct {
	Bill        BillResponse `json:"bill"`
	AlreadyPaid bool         `json:"already_paid"`
}

// PaymentHistoryEntry is one row of a tenant's payment history
type PaymentHistoryEntry struct {
	RecordID      uuid.UUID       `json:"record_id"`
	BillID        uuid.UUID       `json:"bill_id"`
	RoomNumber    string          `json:"room_number"`
	Amount        decimal.Decimal `json:"amount"`
	DueDate       time.Time       `json:"due_date"`
	PaidDate      time.Time       `json:"paid_date"`
	SlipReference *string         `json:"slip_reference,omitempty"`
}

// BillListFilter represents query parameters for listing bills
type BillListFilter struct {
	TenantID      *uuid.UUID `form:"tenant_id"`
	RoomNumber    string     `form:"room_number"`
	PaymentStatus string     `form:"payment_status" binding:"omitempty,oneof=unpaid paid"`
	Page          int        `form:"page" binding:"omitempty,min=1"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToBillResponse converts a domain bill to its response representation
func ToBillResponse(bill *billing.Bill) BillResponse {
	return BillResponse{
		ID:               bill.ID,
		TenantID:         bill.TenantID,
		RoomNumber:       bill.RoomNumber,
		WaterUnits:       bill.WaterUnits,
		ElectricityUnits: bill.ElectricityUnits,
		WaterRate:        bill.WaterRate,
		ElectricityRate:  bill.ElectricityRate,
		RentAmount:       bill.RentAmount,
		TotalAmount:      bill.TotalAmount,
		DueDate:          bill.DueDate,
		MeterReading:     bill.MeterReading,
		SlipReference:    bill.SlipReference,
		PaymentStatus:    string(bill.PaymentStatus),
		PaidDate:         bill.PaidDate,
		CreatedAt:        bill.CreatedAt,
		UpdatedAt:        bill.UpdatedAt,
	}
}

// ToPaymentHistoryEntry converts a joined payment entry for API responses
func ToPaymentHistoryEntry(entry *billing.PaymentEntry) PaymentHistoryEntry {
	return PaymentHistoryEntry{
		RecordID:      entry.Record.ID,
		BillID:        entry.Record.BillID,
		RoomNumber:    entry.RoomNumber,
		Amount:        entry.Record.Amount,
		DueDate:       entry.DueDate,
		PaidDate:      entry.Record.PaidDate,
		SlipReference: entry.Record.SlipReference,
	}
}
