package procurement

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/shared"
)

// ReceivingPolicy derives the inventory batches created when a purchase
// order is received: how batches are numbered, how the selling price is
// derived from the unit cost, and how far out the default expiry horizon
// lies. The markup and shelf life materially affect downstream
// first-expire-first-out behavior, so they are injected from configuration
// rather than hard-coded.
type ReceivingPolicy struct {
	// MarkupPercent is added on top of the unit cost to derive the selling price
	MarkupPercent decimal.Decimal
	// ShelfLifeDays is the default expiry horizon counted from the received date
	ShelfLifeDays int
}

// DefaultMarkupPercent and DefaultShelfLifeDays hold the stock policy used
// when configuration does not override them.
var (
	DefaultMarkupPercent = decimal.NewFromInt(20)
	DefaultShelfLifeDays = 730
)

// DefaultReceivingPolicy returns the policy used when no overrides are configured
func DefaultReceivingPolicy() ReceivingPolicy {
	return ReceivingPolicy{
		MarkupPercent: DefaultMarkupPercent,
		ShelfLifeDays: DefaultShelfLifeDays,
	}
}

// Validate checks the policy parameters
func (p ReceivingPolicy) Validate() error {
	if p.MarkupPercent.IsNegative() {
		return shared.NewValidationError("markupPercent", "Markup percent cannot be negative")
	}
	if p.ShelfLifeDays <= 0 {
		return shared.NewValidationError("shelfLifeDays", "Shelf life days must be positive")
	}
	return nil
}

// BatchNumber derives the ledger batch number for one order line
func (p ReceivingPolicy) BatchNumber(orderCode string, lineNumber int) string {
	return fmt.Sprintf("%s-L%d", orderCode, lineNumber)
}

// SellingPrice derives the selling price from a unit cost by applying the markup
func (p ReceivingPolicy) SellingPrice(unitCost decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(p.MarkupPercent.Div(decimal.NewFromInt(100)))
	return unitCost.Mul(factor).Round(2)
}

// ExpiryDate derives the default expiry date from the received date
func (p ReceivingPolicy) ExpiryDate(receivedDate time.Time) time.Time {
	return receivedDate.AddDate(0, 0, p.ShelfLifeDays)
}

// PlannedBatch describes one batch to be materialized into the ledger
type PlannedBatch struct {
	ProductID    uuid.UUID
	BatchNumber  string
	Quantity     int
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	ReceivedDate time.Time
	ExpiryDate   time.Time
}

// PlanBatches derives one planned batch per order line. The order must be
// in a state that allows receiving; the caller transitions the order and
// materializes the batches atomically.
func (p ReceivingPolicy) PlanBatches(order *PurchaseOrder, receivedDate time.Time) ([]PlannedBatch, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, shared.NewValidationError("order", "Order cannot be nil")
	}
	if len(order.Lines) == 0 {
		return nil, shared.NewValidationError("lines", "Cannot receive an order without lines")
	}

	planned := make([]PlannedBatch, 0, len(order.Lines))
	for i := range order.Lines {
		line := &order.Lines[i]
		planned = append(planned, PlannedBatch{
			ProductID:    line.ProductID,
			BatchNumber:  p.BatchNumber(order.OrderCode, line.LineNumber),
			Quantity:     line.Quantity,
			UnitCost:     line.UnitCost,
			SellingPrice: p.SellingPrice(line.UnitCost),
			ReceivedDate: receivedDate,
			ExpiryDate:   p.ExpiryDate(receivedDate),
		})
	}

	return planned, nil
}
