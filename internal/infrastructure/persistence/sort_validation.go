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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// OwnerSortFields contains allowed sort fields for owners
var OwnerSortFields = map[string]bool{
	"id":                     true,
	"created_at":             true,
	"updated_at":             true,
	"name":                   true,
	"management_fee_percent": true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"address_text": true,
	"status":       true,
	"vacant_since": true,
	"year_built":   true,
	"bedrooms":     true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"last_name":  true,
	"first_name": true,
}

// LeaseSortFields contains allowed sort fields for leases
var LeaseSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"start_date":    true,
	"end_date":      true,
	"contract_rent": true,
	"status":        true,
}

// PaymentSortFields contains allowed sort fields for payments
var PaymentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"payment_date": true,
	"amount":       true,
	"type":         true,
	"status":       true,
}

// ExpenseSortFields contains allowed sort fields for expenses
var ExpenseSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"expense_date": true,
	"amount":       true,
	"category":     true,
	"vendor":       true,
	"source":       true,
}

// BillSortFields contains allowed sort fields for PM bills
var BillSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"bill_date":    true,
	"due_date":     true,
	"total_amount": true,
	"status":       true,
	"vendor":       true,
}

// TaskSortFields contains allowed sort fields for PM tasks
var TaskSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"priority":   true,
	"status":     true,
	"due_date":   true,
}

// RehabSortFields contains allowed sort fields for rehab projects
var RehabSortFields = map[string]bool{
	"id":              true,
	"created_at":      true,
	"updated_at":      true,
	"status":          true,
	"start_date":      true,
	"target_end_date": true,
	"cost_estimate":   true,
}

// NoticeSortFields contains allowed sort fields for city notices
var NoticeSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"received_date": true,
	"deadline":      true,
	"status":        true,
	"type":          true,
}

// TaxSortFields contains allowed sort fields for property taxes
var TaxSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"tax_year":      true,
	"annual_amount": true,
	"paid":          true,
}

// InsuranceSortFields contains allowed sort fields for insurance policies
var InsuranceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"carrier":        true,
	"effective_date": true,
	"expiry_date":    true,
}

// ActivityLogSortFields contains allowed sort fields for activity log entries
var ActivityLogSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"occurred_at": true,
	"action":      true,
	"entity_type": true,
}
