package billing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rently/backend/internal/application/coordinator"
	"github.com/rently/backend/internal/domain/billing"
	"github.com/rently/backend/internal/domain/shared"
	"github.com/rently/backend/internal/domain/tenancy"
	"github.com/rently/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
)

// BillService handles the billing lifecycle: opening bills against a
// tenant's room with a rent snapshot, editing usage on unpaid bills, and
// settling them. Settlement goes through the coordinator so the status flip
// and the payment record land in one transaction.
type BillService struct {
	billRepo    billing.BillRepository
	paymentRepo billing.PaymentRecordRepository
	tenantRepo  tenancy.TenantRepository
	roomRepo    tenancy.RoomRepository
	atomic      coordinator.Atomic
	defaults    config.BillingConfig
}

// NewBillService creates a new BillService
func NewBillService(
	billRepo billing.BillRepository,
	paymentRepo billing.PaymentRecordRepository,
	tenantRepo tenancy.TenantRepository,
	roomRepo tenancy.RoomRepository,
	atomic coordinator.Atomic,
	defaults config.BillingConfig,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		tenantRepo:  tenantRepo,
		roomRepo:    roomRepo,
		atomic:      atomic,
		defaults:    defaults,
	}
}

// Create opens an unpaid bill for a room, by default the tenant's current
// one. The room's rent is snapshotted into the bill; later rent changes
// never touch existing bills. Utility rates fall back to the configured
// defaults when the request leaves them out.
func (s *BillService) Create(ctx context.Context, req CreateBillRequest) (*BillResponse, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewNotFoundError("Tenant", req.TenantID.String())
	}

	var roomNumber string
	switch {
	case req.RoomNumber != nil && strings.TrimSpace(*req.RoomNumber) != "":
		roomNumber = strings.TrimSpace(*req.RoomNumber)
	case tenant.RoomNumber != nil:
		roomNumber = *tenant.RoomNumber
	default:
		return nil, shared.NewDomainError("TENANT_NOT_BOUND", "Tenant has no room to bill")
	}

	room, err := s.roomRepo.FindByNumber(ctx, roomNumber)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, shared.NewNotFoundError("Room", roomNumber)
	}

	waterRate := decimal.NewFromFloat(s.defaults.WaterRate)
	if req.WaterRate != nil {
		waterRate = *req.WaterRate
	}
	electricityRate := decimal.NewFromFloat(s.defaults.ElectricityRate)
	if req.ElectricityRate != nil {
		electricityRate = *req.ElectricityRate
	}

	bill, err := billing.NewBill(billing.NewBillInput{
		TenantID:         tenant.ID,
		RoomNumber:       room.Number,
		RentSnapshot:     room.Rent,
		WaterUnits:       req.WaterUnits,
		ElectricityUnits: req.ElectricityUnits,
		WaterRate:        waterRate,
		ElectricityRate:  electricityRate,
		DueDate:          req.DueDate,
		MeterReading:     req.MeterReading,
	})
	if err != nil {
		return nil, err
	}

	if err := s.billRepo.Create(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Update applies a merge-patch to an unpaid bill and recomputes the total
// under the original rent snapshot. Paid bills are immutable.
func (s *BillService) Update(ctx context.Context, id uuid.UUID, req UpdateBillRequest) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewNotFoundError("Bill", id.String())
	}
	if bill.IsPaid() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot edit a paid bill")
	}

	if req.WaterUnits != nil || req.ElectricityUnits != nil {
		waterUnits := bill.WaterUnits
		if req.WaterUnits != nil {
			waterUnits = *req.WaterUnits
		}
		electricityUnits := bill.ElectricityUnits
		if req.ElectricityUnits != nil {
			electricityUnits = *req.ElectricityUnits
		}
		if err := bill.SetUsage(waterUnits, electricityUnits); err != nil {
			return nil, err
		}
	}
	if req.WaterRate != nil || req.ElectricityRate != nil {
		waterRate := bill.WaterRate
		if req.WaterRate != nil {
			waterRate = *req.WaterRate
		}
		electricityRate := bill.ElectricityRate
		if req.ElectricityRate != nil {
			electricityRate = *req.ElectricityRate
		}
		if err := bill.SetRates(waterRate, electricityRate); err != nil {
			return nil, err
		}
	}
	if req.DueDate != nil {
		if err := bill.SetDueDate(*req.DueDate); err != nil {
			return nil, err
		}
	}
	if req.MeterReading != nil {
		bill.SetMeterReading(*req.MeterReading)
	}
	if req.SlipReference != nil {
		bill.SetSlipReference(*req.SlipReference)
	}

	if err := s.billRepo.Update(ctx, bill); err != nil {
		return nil, err
	}

	response := ToBillResponse(bill)
	return &response, nil
}

// Delete removes a bill together with its payment records
func (s *BillService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.billRepo.Delete(ctx, id)
}

// Get returns a single bill by ID
func (s *BillService) Get(ctx context.Context, id uuid.UUID) (*BillResponse, error) {
	bill, err := s.billRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, shared.NewNotFoundError("Bill", id.String())
	}
	response := ToBillResponse(bill)
	return &response, nil
}

// List returns a paginated page of bills matching the filter
func (s *BillService) List(ctx context.Context, filter BillListFilter) (*shared.Paginated[BillResponse], error) {
	domainFilter := billing.BillFilter{
		Filter:   toSharedFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir),
		TenantID: filter.TenantID,
	}
	if filter.RoomNumber != "" {
		domainFilter.RoomNumber = &filter.RoomNumber
	}
	if filter.PaymentStatus != "" {
		status := billing.PaymentStatus(filter.PaymentStatus)
		domainFilter.PaymentStatus = &status
	}

	bills, total, err := s.billRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items := make([]BillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, ToBillResponse(bill))
	}
	page := shared.NewPaginated(items, total, domainFilter.Page, domainFilter.PageSize)
	return &page, nil
}

// ListByRoom returns a room's bills, due date descending. By default only
// outstanding bills are returned; includeSettled widens to the full history.
func (s *BillService) ListByRoom(ctx context.Context, roomNumber string, includeSettled bool) ([]BillResponse, error) {
	bills, err := s.billRepo.FindByRoom(ctx, roomNumber, includeSettled)
	if err != nil {
		return nil, err
	}
	items := make([]BillResponse, 0, len(bills))
	for _, bill := range bills {
		items = append(items, ToBillResponse(bill))
	}
	return items, nil
}

// Pay settles a bill. The unpaid->paid transition happens exactly once: the
// guarded status flip and the payment record are written in one transaction,
// and paying an already-paid bill returns the bill unchanged with
// AlreadyPaid set instead of an error.
func (s *BillService) Pay(ctx context.Context, id uuid.UUID, req PayBillRequest) (*PayBillResponse, error) {
	paidDate := time.Now()
	if req.PaidDate != nil && !req.PaidDate.IsZero() {
		paidDate = *req.PaidDate
	}

	var result PayBillResponse
	err := s.atomic.Atomic(ctx, func(scope coordinator.Scope) error {
		bill, err := scope.Bills.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if bill == nil {
			return shared.NewNotFoundError("Bill", id.String())
		}

		changed, err := scope.Bills.MarkPaid(ctx, id, paidDate)
		if err != nil {
			return err
		}
		if !changed {
			// Settled earlier; re-read so the response carries the
			// original paid date. The request's slip is discarded: a
			// settled bill is immutable.
			settled, err := scope.Bills.FindByID(ctx, id)
			if err != nil {
				return err
			}
			result = PayBillResponse{Bill: ToBillResponse(settled), AlreadyPaid: true}
			return nil
		}

		if req.SlipReference != nil {
			bill.SetSlipReference(*req.SlipReference)
			if err := scope.Bills.Update(ctx, bill); err != nil {
				return err
			}
		}

		if !bill.MarkPaid(paidDate) {
			return shared.NewDomainError("INVALID_STATE", "Bill payment state diverged")
		}
		record, err := billing.NewPaymentRecord(bill)
		if err != nil {
			return err
		}
		if err := scope.Payments.Append(ctx, record); err != nil {
			return err
		}

		result = PayBillResponse{Bill: ToBillResponse(bill)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// PaymentHistory returns a tenant's payment history, newest payment first
func (s *BillService) PaymentHistory(ctx context.Context, tenantID uuid.UUID) ([]PaymentHistoryEntry, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, shared.NewNotFoundError("Tenant", tenantID.String())
	}

	entries, err := s.paymentRepo.HistoryForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	history := make([]PaymentHistoryEntry, 0, len(entries))
	for _, entry := range entries {
		history = append(history, ToPaymentHistoryEntry(entry))
	}
	return history, nil
}

func toSharedFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}
