package audit

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/phf/backend/internal/domain/audit"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/domain/sales"
	"github.com/phf/backend/internal/domain/shared"
)

// Recorder subscribes to lifecycle events and appends one audit entry
// per operation. Recording failures are logged, never propagated; the
// business operation has already committed by the time its event fires.
type Recorder struct {
	entryRepo audit.EntryRepository
	logger    *zap.Logger
}

// NewRecorder creates a new audit Recorder
func NewRecorder(entryRepo audit.EntryRepository, logger *zap.Logger) *Recorder {
	return &Recorder{
		entryRepo: entryRepo,
		logger:    logger,
	}
}

// EventTypes returns the event types this recorder subscribes to
func (r *Recorder) EventTypes() []string {
	return []string{
		procurement.EventTypePurchaseOrderCreated,
		procurement.EventTypePurchaseOrderSent,
		procurement.EventTypePurchaseOrderReceived,
		procurement.EventTypePurchaseOrderCancelled,
		sales.EventTypeSaleCompleted,
		inventory.EventTypeStockAdjusted,
	}
}

// Handle converts one lifecycle event into an audit entry
func (r *Recorder) Handle(ctx context.Context, event shared.DomainEvent) error {
	entry, err := r.entryFor(event)
	if err != nil {
		r.logger.Error("audit entry rejected",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
		return nil
	}
	if entry == nil {
		return nil
	}

	if err := r.entryRepo.Save(ctx, entry); err != nil {
		r.logger.Error("audit entry not persisted",
			zap.String("event_type", event.EventType()),
			zap.String("resource_id", entry.ResourceID.String()),
			zap.Error(err),
		)
	}
	return nil
}

func (r *Recorder) entryFor(event shared.DomainEvent) (*audit.Entry, error) {
	switch e := event.(type) {
	case *procurement.PurchaseOrderCreatedEvent:
		return audit.NewEntry(audit.ActionCreate, "PurchaseOrder", e.AggregateID(),
			fmt.Sprintf("order %s created", e.OrderCode), e.OccurredAt())
	case *procurement.PurchaseOrderSentEvent:
		return audit.NewEntry(audit.ActionSend, "PurchaseOrder", e.AggregateID(),
			fmt.Sprintf("order %s sent with %d lines", e.OrderCode, e.LineCount), e.OccurredAt())
	case *procurement.PurchaseOrderReceivedEvent:
		return audit.NewEntry(audit.ActionReceive, "PurchaseOrder", e.AggregateID(),
			fmt.Sprintf("order %s received, %d units", e.OrderCode, e.TotalQuantity), e.OccurredAt())
	case *procurement.PurchaseOrderCancelledEvent:
		return audit.NewEntry(audit.ActionCancel, "PurchaseOrder", e.AggregateID(),
			fmt.Sprintf("order %s cancelled", e.OrderCode), e.OccurredAt())
	case *sales.SaleCompletedEvent:
		return audit.NewEntry(audit.ActionSale, "SaleTransaction", e.AggregateID(),
			fmt.Sprintf("receipt %s, %d units", e.ReceiptNumber, e.TotalQuantity), e.OccurredAt())
	case *inventory.StockAdjustedEvent:
		return audit.NewEntry(audit.ActionAdjust, "InventoryBatch", e.AggregateID(),
			fmt.Sprintf("%s %+d", e.AdjustmentType, e.QuantityChange), e.OccurredAt())
	}
	return nil, nil
}

var _ shared.EventHandler = (*Recorder)(nil)
