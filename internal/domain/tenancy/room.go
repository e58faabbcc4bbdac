package tenancy

import (
	"strings"

	"github.com/rently/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// RoomStatus represents the occupancy status of a room.
// It is derived state: exactly one tenant bound to the room means occupied,
// otherwise available. It is never written independently of a tenant binding.
type RoomStatus string

const (
	RoomStatusAvailable RoomStatus = "available"
	RoomStatusOccupied  RoomStatus = "occupied"
)

// Tenancy conflict errors
var (
	ErrRoomOccupied        = shared.NewDomainError("ROOM_OCCUPIED", "Room is already occupied by another tenant")
	ErrDuplicateRoomNumber = shared.NewDomainError("ROOM_NUMBER_EXISTS", "Room number already exists")
	ErrDuplicateUsername   = shared.NewDomainError("USERNAME_EXISTS", "Username already exists")
)

// Room represents a rentable unit.
// It is the aggregate root for room administration; occupancy transitions
// happen only through tenant create/move/delete operations.
type Room struct {
	shared.BaseAggregateRoot
	Number      string
	Rent        decimal.Decimal
	Description string
	Status      RoomStatus
}

// NewRoom creates a new available room with the given business number
func NewRoom(number string, rent decimal.Decimal, description string) (*Room, error) {
	number = strings.TrimSpace(number)
	if err := validateRoomNumber(number); err != nil {
		return nil, err
	}
	if rent.IsNegative() {
		return nil, shared.NewInvalidInputError("rent", "must not be negative")
	}

	return &Room{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Rent:              rent,
		Description:       strings.TrimSpace(description),
		Status:            RoomStatusAvailable,
	}, nil
}

// ChangeRent updates the monthly rent. Existing bills keep their snapshot.
func (r *Room) ChangeRent(rent decimal.Decimal) error {
	if rent.IsNegative() {
		return shared.NewInvalidInputError("rent", "must not be negative")
	}
	r.Rent = rent
	r.Touch()
	return nil
}

// SetDescription updates the room description
func (r *Room) SetDescription(description string) {
	r.Description = strings.TrimSpace(description)
	r.Touch()
}

// Renumber changes the business-unique room number
func (r *Room) Renumber(number string) error {
	number = strings.TrimSpace(number)
	if err := validateRoomNumber(number); err != nil {
		return err
	}
	r.Number = number
	r.Touch()
	return nil
}

// IsOccupied reports whether the room currently has a tenant bound to it
func (r *Room) IsOccupied() bool {
	return r.Status == RoomStatusOccupied
}

func validateRoomNumber(number string) error {
	if number == "" {
		return shared.NewInvalidInputError("number", "is required")
	}
	if len(number) > 20 {
		return shared.NewInvalidInputError("number", "cannot exceed 20 characters")
	}
	return nil
}
