package tenancy

import (
	"strings"

	"github.com/rently/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// TenantRole represents the access level of a tenant account
type TenantRole string

const (
	RoleUser  TenantRole = "user"
	RoleAdmin TenantRole = "admin"
)

// Password cost for bcrypt
const bcryptCost = 12

// Tenant represents a registered occupant, optionally bound to one room.
// The tenant references the room by business number; the room never
// references the tenant back.
type Tenant struct {
	shared.BaseAggregateRoot
	Username     string
	PasswordHash string
	FullName     string
	Phone        string
	LineID       string
	Role         TenantRole
	RoomNumber   *string
}

// NewTenant creates a new tenant account with a hashed password
func NewTenant(username, password string, role TenantRole) (*Tenant, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, shared.NewInvalidInputError("role", "must be user or admin")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		PasswordHash:      hash,
		Role:              role,
	}, nil
}

// SetFullName sets the tenant's full name
func (t *Tenant) SetFullName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) > 200 {
		return shared.NewInvalidInputError("full_name", "cannot exceed 200 characters")
	}
	t.FullName = name
	t.Touch()
	return nil
}

// SetPhone sets the tenant's phone number
func (t *Tenant) SetPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if len(phone) > 50 {
		return shared.NewInvalidInputError("phone", "cannot exceed 50 characters")
	}
	t.Phone = phone
	t.Touch()
	return nil
}

// SetLineID sets the tenant's messaging identifier
func (t *Tenant) SetLineID(lineID string) error {
	lineID = strings.TrimSpace(lineID)
	if len(lineID) > 100 {
		return shared.NewInvalidInputError("line_id", "cannot exceed 100 characters")
	}
	t.LineID = lineID
	t.Touch()
	return nil
}

// BindRoom records the room this tenant occupies
func (t *Tenant) BindRoom(number string) {
	n := strings.TrimSpace(number)
	t.RoomNumber = &n
	t.Touch()
}

// ReleaseRoom clears the tenant's room binding
func (t *Tenant) ReleaseRoom() {
	t.RoomNumber = nil
	t.Touch()
}

// OccupiesRoom reports whether the tenant is bound to the given room number
func (t *Tenant) OccupiesRoom(number string) bool {
	return t.RoomNumber != nil && *t.RoomNumber == number
}

// SetPassword replaces the tenant's password with a freshly hashed one
func (t *Tenant) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	t.PasswordHash = hash
	t.Touch()
	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (t *Tenant) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the tenant has administrative access
func (t *Tenant) IsAdmin() bool {
	return t.Role == RoleAdmin
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewInvalidInputError("username", "is required")
	}
	if len(username) < 3 || len(username) > 100 {
		return shared.NewInvalidInputError("username", "must be between 3 and 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewInvalidInputError("password", "must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewInvalidInputError("password", "cannot exceed 72 characters")
	}
	return nil
}
