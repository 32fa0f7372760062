package inventory

import (
	"context"

	"go.uber.org/zap"

	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

// StockBelowThresholdHandler reacts to StockBelowThreshold events by
// surfacing them in the operational log. Reorder automation can hang
// additional behavior off the same event.
type StockBelowThresholdHandler struct {
	logger *zap.Logger
}

// NewStockBelowThresholdHandler creates a new handler for stock below threshold events
func NewStockBelowThresholdHandler(logger *zap.Logger) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{logger: logger}
}

// EventTypes returns the event types this handler subscribes to
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowThreshold}
}

// Handle processes a StockBelowThreshold event
func (h *StockBelowThresholdHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.StockBelowThresholdEvent)
	if !ok {
		return nil
	}
	h.logger.Warn("product stock below threshold",
		zap.String("product_id", e.ProductID.String()),
		zap.Int("total_stock", e.TotalStock),
		zap.Int("threshold", e.Threshold),
	)
	return nil
}

var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)
