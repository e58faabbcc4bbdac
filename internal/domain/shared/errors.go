package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// NewNotFoundError creates a NOT_FOUND error naming the entity and identifier
func NewNotFoundError(entity, id string) *DomainError {
	return NewDomainError("NOT_FOUND", fmt.Sprintf("%s not found: %s", entity, id))
}

// NewInvalidInputError creates an INVALID_INPUT error naming the offending field
func NewInvalidInputError(field, reason string) *DomainError {
	return NewDomainError("INVALID_INPUT", fmt.Sprintf("%s: %s", field, reason))
}

// NewStorageError wraps a storage failure. The underlying error is kept in the
// message for logs; callers treat the code as transient.
func NewStorageError(op string, err error) *DomainError {
	return NewDomainError("STORAGE_FAILURE", fmt.Sprintf("storage failure during %s: %v", op, err))
}
