package catalog

import (
	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to register a new product
type CreateProductRequest struct {
	SKU              string `json:"sku" binding:"required,min=1,max=64"`
	Name             string `json:"name" binding:"required,min=1,max=255"`
	ActiveIngredient string `json:"active_ingredient" binding:"required,min=1,max=255"`
	DosageForm       string `json:"dosage_form" binding:"required,min=1,max=128"`
	DosageStrength   string `json:"dosage_strength" binding:"required,min=1,max=64"`
	Category         string `json:"category" binding:"required,oneof=PRESCRIPTION OVER_THE_COUNTER"`
	ReorderLevel     *int   `json:"reorder_level" binding:"omitempty,min=0"`
	MinStock         *int   `json:"min_stock" binding:"omitempty,min=0"`
	ExpiryAlertDays  *int   `json:"expiry_alert_days" binding:"omitempty,min=1"`
}

// UpdateProductRequest represents a request to update a product's details
type UpdateProductRequest struct {
	SKU              *string `json:"sku" binding:"omitempty,min=1,max=64"`
	Name             *string `json:"name" binding:"omitempty,min=1,max=255"`
	ActiveIngredient *string `json:"active_ingredient" binding:"omitempty,min=1,max=255"`
	DosageForm       *string `json:"dosage_form" binding:"omitempty,min=1,max=128"`
	DosageStrength   *string `json:"dosage_strength" binding:"omitempty,min=1,max=64"`
	Category         *string `json:"category" binding:"omitempty,oneof=PRESCRIPTION OVER_THE_COUNTER"`
}

// ConfigureAlertsRequest represents a request to configure a product's alert thresholds
type ConfigureAlertsRequest struct {
	ReorderLevel    *int `json:"reorder_level" binding:"omitempty,min=0"`
	MinStock        *int `json:"min_stock" binding:"omitempty,min=0"`
	ExpiryAlertDays *int `json:"expiry_alert_days" binding:"omitempty,min=1"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID               uuid.UUID `json:"id"`
	SKU              string    `json:"sku"`
	Name             string    `json:"name"`
	ActiveIngredient string    `json:"active_ingredient"`
	DosageForm       string    `json:"dosage_form"`
	DosageStrength   string    `json:"dosage_strength"`
	Category         string    `json:"category"`
	ReorderLevel     *int      `json:"reorder_level,omitempty"`
	MinStock         *int      `json:"min_stock,omitempty"`
	ExpiryAlertDays  *int      `json:"expiry_alert_days,omitempty"`
	Active           bool      `json:"active"`
	Version          int       `json:"version"`
}

// ToProductResponse converts a product to its API representation
func ToProductResponse(p *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		ActiveIngredient: p.ActiveIngredient,
		DosageForm:       p.DosageForm,
		DosageStrength:   p.DosageStrength,
		Category:         p.Category.String(),
		ReorderLevel:     p.ReorderLevel,
		MinStock:         p.MinStock,
		ExpiryAlertDays:  p.ExpiryAlertDays,
		Active:           p.Active,
		Version:          p.Version,
	}
}
