package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/shared"
)

const (
	EventTypeSaleCompleted = "sales.sale.completed"
)

// SaleCompletedEvent is published once a sale and its stock deductions
// have been committed together.
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	ReceiptNumber string          `json:"receipt_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalQuantity int             `json:"total_quantity"`
	ProductIDs    []uuid.UUID     `json:"product_ids"`
}

func NewSaleCompletedEvent(sale *SaleTransaction) *SaleCompletedEvent {
	productIDs := make([]uuid.UUID, 0, len(sale.Lines))
	seen := make(map[uuid.UUID]struct{}, len(sale.Lines))
	for i := range sale.Lines {
		id := sale.Lines[i].ProductID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		productIDs = append(productIDs, id)
	}
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, "SaleTransaction", sale.ID),
		ReceiptNumber:   sale.ReceiptNumber,
		TotalAmount:     sale.TotalAmount,
		TotalQuantity:   sale.TotalQuantity(),
		ProductIDs:      productIDs,
	}
}
