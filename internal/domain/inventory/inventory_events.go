package inventory

import (
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// Event types for the inventory domain
const (
	EventTypeBatchReceived       = "inventory.batch.received"
	EventTypeStockDeducted       = "inventory.stock.deducted"
	EventTypeStockAdjusted       = "inventory.stock.adjusted"
	EventTypeStockBelowThreshold = "inventory.stock.below_threshold"
)

// BatchReceivedEvent is emitted when a new batch enters the ledger
type BatchReceivedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID `json:"product_id"`
	BatchNumber string    `json:"batch_number"`
	Quantity    int       `json:"quantity"`
	ExpiryDate  time.Time `json:"expiry_date"`
}

// NewBatchReceivedEvent creates a new BatchReceivedEvent
func NewBatchReceivedEvent(b *InventoryBatch) *BatchReceivedEvent {
	return &BatchReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBatchReceived, "InventoryBatch", b.ID),
		ProductID:       b.ProductID,
		BatchNumber:     b.BatchNumber,
		Quantity:        b.QuantityOnHand,
		ExpiryDate:      b.ExpiryDate,
	}
}

// StockDeductedEvent is emitted when stock is deducted from a batch
type StockDeductedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	BatchID   uuid.UUID `json:"batch_id"`
	Quantity  int       `json:"quantity"`
	Remaining int       `json:"remaining"`
}

// NewStockDeductedEvent creates a new StockDeductedEvent
func NewStockDeductedEvent(productID, batchID uuid.UUID, quantity, remaining int) *StockDeductedEvent {
	return &StockDeductedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockDeducted, "InventoryBatch", batchID),
		ProductID:       productID,
		BatchID:         batchID,
		Quantity:        quantity,
		Remaining:       remaining,
	}
}

// StockAdjustedEvent is emitted when a manual adjustment is applied
type StockAdjustedEvent struct {
	shared.BaseDomainEvent
	ProductID      uuid.UUID      `json:"product_id"`
	BatchID        uuid.UUID      `json:"batch_id"`
	AdjustmentType AdjustmentType `json:"adjustment_type"`
	QuantityChange int            `json:"quantity_change"`
}

// NewStockAdjustedEvent creates a new StockAdjustedEvent
func NewStockAdjustedEvent(adj *InventoryAdjustment) *StockAdjustedEvent {
	return &StockAdjustedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockAdjusted, "InventoryBatch", adj.BatchID),
		ProductID:       adj.ProductID,
		BatchID:         adj.BatchID,
		AdjustmentType:  adj.Type,
		QuantityChange:  adj.QuantityChange,
	}
}

// StockBelowThresholdEvent is emitted when a product's total stock falls
// to or below its configured low-stock threshold
type StockBelowThresholdEvent struct {
	shared.BaseDomainEvent
	ProductID  uuid.UUID `json:"product_id"`
	TotalStock int       `json:"total_stock"`
	Threshold  int       `json:"threshold"`
}

// NewStockBelowThresholdEvent creates a new StockBelowThresholdEvent
func NewStockBelowThresholdEvent(productID uuid.UUID, totalStock, threshold int) *StockBelowThresholdEvent {
	return &StockBelowThresholdEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockBelowThreshold, "Product", productID),
		ProductID:       productID,
		TotalStock:      totalStock,
		Threshold:       threshold,
	}
}
