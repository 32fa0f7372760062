package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "ASC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "DESC" {
		return "DESC"
	}
	return "ASC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is empty or not whitelisted.
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

// ProductSortFields contains allowed sort fields for products
var ProductSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"sku":        true,
	"name":       true,
	"category":   true,
}

// SupplierSortFields contains allowed sort fields for suppliers
var SupplierSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// BatchSortFields contains allowed sort fields for inventory batches
var BatchSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"batch_number":     true,
	"expiry_date":      true,
	"received_date":    true,
	"quantity_on_hand": true,
}

// PurchaseOrderSortFields contains allowed sort fields for purchase orders
var PurchaseOrderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"order_code": true,
	"order_date": true,
	"status":     true,
}

// SaleSortFields contains allowed sort fields for sale transactions
var SaleSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"receipt_number": true,
	"sold_at":        true,
	"total_amount":   true,
}

// AuditSortFields contains allowed sort fields for audit entries
var AuditSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"occurred_at": true,
	"action":      true,
}
