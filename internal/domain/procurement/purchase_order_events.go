package procurement

import (
	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// Event types for the procurement domain
const (
	EventTypePurchaseOrderCreated   = "procurement.order.created"
	EventTypePurchaseOrderSent      = "procurement.order.sent"
	EventTypePurchaseOrderReceived  = "procurement.order.received"
	EventTypePurchaseOrderCancelled = "procurement.order.cancelled"
)

// PurchaseOrderCreatedEvent is emitted when an order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderCode  string    `json:"order_code"`
	SupplierID uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(o *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, "PurchaseOrder", o.ID),
		OrderCode:       o.OrderCode,
		SupplierID:      o.SupplierID,
	}
}

// PurchaseOrderSentEvent is emitted on the DRAFT to ORDERED transition
type PurchaseOrderSentEvent struct {
	shared.BaseDomainEvent
	OrderCode string `json:"order_code"`
	LineCount int    `json:"line_count"`
}

// NewPurchaseOrderSentEvent creates a new PurchaseOrderSentEvent
func NewPurchaseOrderSentEvent(o *PurchaseOrder) *PurchaseOrderSentEvent {
	return &PurchaseOrderSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSent, "PurchaseOrder", o.ID),
		OrderCode:       o.OrderCode,
		LineCount:       len(o.Lines),
	}
}

// PurchaseOrderReceivedEvent is emitted on the ORDERED to RECEIVED transition
type PurchaseOrderReceivedEvent struct {
	shared.BaseDomainEvent
	OrderCode     string `json:"order_code"`
	TotalQuantity int    `json:"total_quantity"`
}

// NewPurchaseOrderReceivedEvent creates a new PurchaseOrderReceivedEvent
func NewPurchaseOrderReceivedEvent(o *PurchaseOrder) *PurchaseOrderReceivedEvent {
	return &PurchaseOrderReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderReceived, "PurchaseOrder", o.ID),
		OrderCode:       o.OrderCode,
		TotalQuantity:   o.TotalQuantity(),
	}
}

// PurchaseOrderCancelledEvent is emitted when an order is cancelled
type PurchaseOrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderCode string `json:"order_code"`
}

// NewPurchaseOrderCancelledEvent creates a new PurchaseOrderCancelledEvent
func NewPurchaseOrderCancelledEvent(o *PurchaseOrder) *PurchaseOrderCancelledEvent {
	return &PurchaseOrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCancelled, "PurchaseOrder", o.ID),
		OrderCode:       o.OrderCode,
	}
}
