package catalog

import (
	"strings"
	"time"

	"github.com/phf/backend/internal/domain/shared"
)

// ProductCategory classifies how a product may be dispensed
type ProductCategory string

const (
	ProductCategoryPrescription   ProductCategory = "PRESCRIPTION"
	ProductCategoryOverTheCounter ProductCategory = "OVER_THE_COUNTER"
)

// IsValid checks if the category is a valid ProductCategory
func (c ProductCategory) IsValid() bool {
	switch c {
	case ProductCategoryPrescription, ProductCategoryOverTheCounter:
		return true
	}
	return false
}

// String returns the string representation of ProductCategory
func (c ProductCategory) String() string {
	return string(c)
}

// Product represents a sellable pharmaceutical product.
// It is master data: batches, order lines and sale lines reference it by ID.
// Products are never deleted, only deactivated.
type Product struct {
	shared.BaseAggregateRoot
	SKU              string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_product_sku"`
	Name             string          `gorm:"type:varchar(255);not null"`
	ActiveIngredient string          `gorm:"type:varchar(255);not null"`
	DosageForm       string          `gorm:"type:varchar(128);not null"`
	DosageStrength   string          `gorm:"type:varchar(64);not null"`
	Category         ProductCategory `gorm:"type:varchar(32);not null"`
	ReorderLevel     *int            `gorm:""`
	MinStock         *int            `gorm:""`
	ExpiryAlertDays  *int            `gorm:""`
	Active           bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, activeIngredient, dosageForm, dosageStrength string, category ProductCategory) (*Product, error) {
	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	if err := product.updateDetails(sku, name, activeIngredient, dosageForm, dosageStrength, category); err != nil {
		return nil, err
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// UpdateDetails updates the product master data
func (p *Product) UpdateDetails(sku, name, activeIngredient, dosageForm, dosageStrength string, category ProductCategory) error {
	if err := p.updateDetails(sku, name, activeIngredient, dosageForm, dosageStrength, category); err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

func (p *Product) updateDetails(sku, name, activeIngredient, dosageForm, dosageStrength string, category ProductCategory) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewValidationError("sku", "SKU cannot be empty")
	}
	if len(sku) > 64 {
		return shared.NewValidationError("sku", "SKU cannot exceed 64 characters")
	}
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("name", "Name cannot be empty")
	}
	if strings.TrimSpace(activeIngredient) == "" {
		return shared.NewValidationError("activeIngredient", "Active ingredient cannot be empty")
	}
	if strings.TrimSpace(dosageForm) == "" {
		return shared.NewValidationError("dosageForm", "Dosage form cannot be empty")
	}
	if strings.TrimSpace(dosageStrength) == "" {
		return shared.NewValidationError("dosageStrength", "Dosage strength cannot be empty")
	}
	if !category.IsValid() {
		return shared.NewValidationError("category", "Unknown product category")
	}

	p.SKU = strings.ToUpper(sku)
	p.Name = name
	p.ActiveIngredient = activeIngredient
	p.DosageForm = dosageForm
	p.DosageStrength = dosageStrength
	p.Category = category

	return nil
}

// ConfigureAlerts sets the low-stock and expiry alert thresholds.
// Nil disables the corresponding alert for this product.
func (p *Product) ConfigureAlerts(reorderLevel, minStock, expiryAlertDays *int) error {
	if reorderLevel != nil && *reorderLevel < 0 {
		return shared.NewValidationError("reorderLevel", "Reorder level cannot be negative")
	}
	if minStock != nil && *minStock < 0 {
		return shared.NewValidationError("minStock", "Min stock cannot be negative")
	}
	if expiryAlertDays != nil && *expiryAlertDays <= 0 {
		return shared.NewValidationError("expiryAlertDays", "Expiry alert days must be positive")
	}

	p.ReorderLevel = reorderLevel
	p.MinStock = minStock
	p.ExpiryAlertDays = expiryAlertDays
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// LowStockThreshold returns the configured low-stock threshold.
// ReorderLevel takes precedence over MinStock; false means no threshold is configured.
func (p *Product) LowStockThreshold() (int, bool) {
	if p.ReorderLevel != nil {
		return *p.ReorderLevel, true
	}
	if p.MinStock != nil {
		return *p.MinStock, true
	}
	return 0, false
}

// Deactivate marks the product as inactive. Inactive products cannot be
// sold or ordered but remain referenced by historical records.
func (p *Product) Deactivate() {
	if !p.Active {
		return
	}
	p.Active = false
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductDeactivatedEvent(p))
}

// Activate re-enables a deactivated product
func (p *Product) Activate() {
	if p.Active {
		return
	}
	p.Active = true
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
