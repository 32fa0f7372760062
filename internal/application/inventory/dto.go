package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/inventory"
)

// RecordBatchRequest represents a request to enter a batch into the
// ledger outside the purchase order flow, such as opening stock.
type RecordBatchRequest struct {
	ProductID    uuid.UUID       `json:"product_id" binding:"required"`
	BatchNumber  string          `json:"batch_number" binding:"required,min=1,max=64"`
	Quantity     int             `json:"quantity" binding:"required,min=1"`
	CostPrice    decimal.Decimal `json:"cost_price" binding:"required"`
	SellingPrice decimal.Decimal `json:"selling_price" binding:"required"`
	ReceivedDate time.Time       `json:"received_date" binding:"required"`
	ExpiryDate   time.Time       `json:"expiry_date" binding:"required"`
	PerformedBy  uuid.UUID       `json:"-"`
}

// AdjustStockRequest represents a manual correction to a batch's balance
type AdjustStockRequest struct {
	BatchID     uuid.UUID `json:"batch_id" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=COUNT_VARIANCE DAMAGED_GOODS EXPIRED_REMOVAL INITIAL_STOCK OTHER"`
	Change      int       `json:"change" binding:"required"`
	Reason      string    `json:"reason" binding:"max=500"`
	PerformedBy uuid.UUID `json:"-"`
}

// BatchResponse represents a ledger batch in API responses
type BatchResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	BatchNumber    string          `json:"batch_number"`
	QuantityOnHand int             `json:"quantity_on_hand"`
	CostPrice      decimal.Decimal `json:"cost_price"`
	SellingPrice   decimal.Decimal `json:"selling_price"`
	ReceivedDate   time.Time       `json:"received_date"`
	ExpiryDate     time.Time       `json:"expiry_date"`
	Active         bool            `json:"active"`
	Expired        bool            `json:"expired"`
}

// ToBatchResponse converts a batch to its API representation
func ToBatchResponse(b *inventory.InventoryBatch, asOf time.Time) *BatchResponse {
	return &BatchResponse{
		ID:             b.ID,
		ProductID:      b.ProductID,
		BatchNumber:    b.BatchNumber,
		QuantityOnHand: b.QuantityOnHand,
		CostPrice:      b.CostPrice,
		SellingPrice:   b.SellingPrice,
		ReceivedDate:   b.ReceivedDate,
		ExpiryDate:     b.ExpiryDate,
		Active:         b.Active,
		Expired:        b.IsExpired(asOf),
	}
}

// AdjustmentResponse represents an adjustment record in API responses
type AdjustmentResponse struct {
	ID             uuid.UUID `json:"id"`
	BatchID        uuid.UUID `json:"batch_id"`
	ProductID      uuid.UUID `json:"product_id"`
	PerformedBy    uuid.UUID `json:"performed_by"`
	Type           string    `json:"type"`
	QuantityChange int       `json:"quantity_change"`
	Reason         string    `json:"reason,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToAdjustmentResponse converts an adjustment to its API representation
func ToAdjustmentResponse(a *inventory.InventoryAdjustment) *AdjustmentResponse {
	return &AdjustmentResponse{
		ID:             a.ID,
		BatchID:        a.BatchID,
		ProductID:      a.ProductID,
		PerformedBy:    a.PerformedBy,
		Type:           a.Type.String(),
		QuantityChange: a.QuantityChange,
		Reason:         a.Reason,
		CreatedAt:      a.CreatedAt,
	}
}

// StockSummaryResponse reports a product's sellable position
type StockSummaryResponse struct {
	ProductID      uuid.UUID `json:"product_id"`
	TotalAvailable int       `json:"total_available"`
	BatchCount     int64     `json:"batch_count"`
	AsOf           time.Time `json:"as_of"`
}
