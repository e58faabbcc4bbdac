package handler

import (
	"github.com/google/uuid"
	"github.com/rently/backend/internal/domain/shared"
)

// billNotFoundError hides another tenant's bill behind a plain not-found
func billNotFoundError(id uuid.UUID) error {
	return shared.NewNotFoundError("Bill", id.String())
}
