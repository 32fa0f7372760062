package catalog

import "github.com/phf/backend/internal/domain/shared"

// Event types for the catalog domain
const (
	EventTypeProductCreated     = "catalog.product.created"
	EventTypeProductUpdated     = "catalog.product.updated"
	EventTypeProductDeactivated = "catalog.product.deactivated"
)

// ProductCreatedEvent is emitted when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		SKU:             p.SKU,
		Name:            p.Name,
	}
}

// ProductUpdatedEvent is emitted when product master data changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID),
		SKU:             p.SKU,
	}
}

// ProductDeactivatedEvent is emitted when a product is deactivated
type ProductDeactivatedEvent struct {
	shared.BaseDomainEvent
	SKU string `json:"sku"`
}

// NewProductDeactivatedEvent creates a new ProductDeactivatedEvent
func NewProductDeactivatedEvent(p *Product) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDeactivated, "Product", p.ID),
		SKU:             p.SKU,
	}
}
