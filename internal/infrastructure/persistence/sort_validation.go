package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// RoomSortFields contains allowed sort fields for rooms
var RoomSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"rent":       true,
	"status":     true,
}

// TenantSortFields contains allowed sort fields for tenant accounts
var TenantSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"username":    true,
	"full_name":   true,
	"role":        true,
	"room_number": true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"room_number":    true,
	"due_date":       true,
	"total_amount":   true,
	"payment_status": true,
	"paid_date":      true,
}

// MaintenanceRequestSortFields contains allowed sort fields for maintenance requests
var MaintenanceRequestSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"room_number": true,
	"status":      true,
}

// AnnouncementSortFields contains allowed sort fields for announcements
var AnnouncementSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"title":        true,
	"published_at": true,
}
