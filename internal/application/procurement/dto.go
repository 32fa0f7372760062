package procurement

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/procurement"
)

// LineRequest represents one order line in a create or update request
type LineRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitCost  decimal.Decimal `json:"unit_cost" binding:"required"`
}

// CreatePurchaseOrderRequest represents a request to open a draft order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID     `json:"supplier_id" binding:"required"`
	OrderDate  *time.Time    `json:"order_date"`
	Lines      []LineRequest `json:"lines" binding:"omitempty,dive"`
}

// UpdatePurchaseOrderRequest replaces a draft order's lines
type UpdatePurchaseOrderRequest struct {
	Lines []LineRequest `json:"lines" binding:"required,min=1,dive"`
}

// SendPurchaseOrderRequest transitions a draft order to ORDERED
type SendPurchaseOrderRequest struct {
	ExpectedDate *time.Time `json:"expected_date"`
}

// ReceivePurchaseOrderRequest marks an order received and materializes
// its lines into ledger batches
type ReceivePurchaseOrderRequest struct {
	ReceivedDate *time.Time `json:"received_date"`
}

// PurchaseOrderLineResponse represents an order line in API responses
type PurchaseOrderLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	LineNumber  int             `json:"line_number"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID            uuid.UUID                   `json:"id"`
	OrderCode     string                      `json:"order_code"`
	SupplierID    uuid.UUID                   `json:"supplier_id"`
	SupplierName  string                      `json:"supplier_name"`
	Status        string                      `json:"status"`
	OrderDate     time.Time                   `json:"order_date"`
	ExpectedDate  *time.Time                  `json:"expected_date,omitempty"`
	ReceivedAt    *time.Time                  `json:"received_at,omitempty"`
	CancelledAt   *time.Time                  `json:"cancelled_at,omitempty"`
	TotalCost     decimal.Decimal             `json:"total_cost"`
	TotalQuantity int                         `json:"total_quantity"`
	Lines         []PurchaseOrderLineResponse `json:"lines"`
	Version       int                         `json:"version"`
}

// ToPurchaseOrderResponse converts a purchase order to its API representation
func ToPurchaseOrderResponse(o *procurement.PurchaseOrder) *PurchaseOrderResponse {
	lines := make([]PurchaseOrderLineResponse, 0, len(o.Lines))
	for i := range o.Lines {
		line := &o.Lines[i]
		lines = append(lines, PurchaseOrderLineResponse{
			ID:          line.ID,
			LineNumber:  line.LineNumber,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
			LineTotal:   line.LineTotal(),
		})
	}
	return &PurchaseOrderResponse{
		ID:            o.ID,
		OrderCode:     o.OrderCode,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		Status:        o.Status.String(),
		OrderDate:     o.OrderDate,
		ExpectedDate:  o.ExpectedDate,
		ReceivedAt:    o.ReceivedAt,
		CancelledAt:   o.CancelledAt,
		TotalCost:     o.TotalCost(),
		TotalQuantity: o.TotalQuantity(),
		Lines:         lines,
		Version:       o.Version,
	}
}

// ReceiveResult reports the outcome of receiving an order
type ReceiveResult struct {
	Order   *PurchaseOrderResponse `json:"order"`
	Batches []ReceivedBatch        `json:"batches"`
}

// ReceivedBatch describes one ledger batch created by a receive
type ReceivedBatch struct {
	BatchID      uuid.UUID       `json:"batch_id"`
	ProductID    uuid.UUID       `json:"product_id"`
	BatchNumber  string          `json:"batch_number"`
	Quantity     int             `json:"quantity"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	ExpiryDate   time.Time       `json:"expiry_date"`
}
