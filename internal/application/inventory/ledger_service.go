package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

// LedgerService handles batch ledger operations: recording stock,
// manual adjustments, and availability queries.
type LedgerService struct {
	txScope        TransactionScope
	batchRepo      inventory.BatchRepository
	adjustmentRepo inventory.AdjustmentRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	txScope TransactionScope,
	batchRepo inventory.BatchRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	productRepo catalog.ProductRepository,
) *LedgerService {
	return &LedgerService{
		txScope:        txScope,
		batchRepo:      batchRepo,
		adjustmentRepo: adjustmentRepo,
		productRepo:    productRepo,
		now:            time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *LedgerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the service clock, for tests
func (s *LedgerService) SetClock(now func() time.Time) {
	s.now = now
}

// RecordBatch enters a new batch into the ledger, typically opening
// stock. Batches from supplier deliveries arrive through the purchase
// order receive flow instead.
func (s *LedgerService) RecordBatch(ctx context.Context, req RecordBatchRequest) (*BatchResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewValidationError("product_id", "Product is not active")
	}

	exists, err := s.batchRepo.ExistsByProductAndBatchNumber(ctx, req.ProductID, req.BatchNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError("InventoryBatch", req.BatchNumber)
	}

	batch, err := inventory.NewInventoryBatch(req.ProductID, req.BatchNumber, req.Quantity,
		req.CostPrice, req.SellingPrice, req.ReceivedDate, req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	adjustment, err := inventory.NewInventoryAdjustment(batch.ID, batch.ProductID, req.PerformedBy,
		inventory.AdjustmentTypeInitialStock, req.Quantity, "Opening stock entry")
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.BatchRepo().Create(ctx, batch); err != nil {
			return err
		}
		return repos.AdjustmentRepo().Create(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewBatchReceivedEvent(batch))
	return ToBatchResponse(batch, s.now()), nil
}

// Adjust applies a manual correction to one batch's balance and records
// the reason. The resulting balance can never go negative.
func (s *LedgerService) Adjust(ctx context.Context, req AdjustStockRequest) (*AdjustmentResponse, error) {
	adjType := inventory.AdjustmentType(req.Type)

	var (
		adjustment *inventory.InventoryAdjustment
		batch      *inventory.InventoryBatch
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		batch, err = repos.BatchRepo().FindByID(ctx, req.BatchID)
		if err != nil {
			return err
		}

		if err := batch.ApplyAdjustment(req.Change); err != nil {
			return err
		}

		adjustment, err = inventory.NewInventoryAdjustment(batch.ID, batch.ProductID, req.PerformedBy,
			adjType, req.Change, req.Reason)
		if err != nil {
			return err
		}

		if err := repos.BatchRepo().Save(ctx, batch); err != nil {
			return err
		}
		return repos.AdjustmentRepo().Create(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, inventory.NewStockAdjustedEvent(adjustment))
	s.checkThreshold(ctx, batch.ProductID)
	return ToAdjustmentResponse(adjustment), nil
}

// GetBatch fetches one batch
func (s *LedgerService) GetBatch(ctx context.Context, id uuid.UUID) (*BatchResponse, error) {
	batch, err := s.batchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToBatchResponse(batch, s.now()), nil
}

// AvailableBatches lists a product's sellable batches in first-expire-
// first-out order.
func (s *LedgerService) AvailableBatches(ctx context.Context, productID uuid.UUID) ([]*BatchResponse, error) {
	asOf := s.now()
	batches, err := s.batchRepo.FindAvailableByProduct(ctx, productID, asOf)
	if err != nil {
		return nil, err
	}
	responses := make([]*BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, ToBatchResponse(&batches[i], asOf))
	}
	return responses, nil
}

// AllBatches lists every batch recorded for a product, including
// depleted, expired and deactivated ones.
func (s *LedgerService) AllBatches(ctx context.Context, productID uuid.UUID) ([]*BatchResponse, error) {
	asOf := s.now()
	batches, err := s.batchRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	responses := make([]*BatchResponse, 0, len(batches))
	for i := range batches {
		responses = append(responses, ToBatchResponse(&batches[i], asOf))
	}
	return responses, nil
}

// StockSummary reports a product's total sellable quantity
func (s *LedgerService) StockSummary(ctx context.Context, productID uuid.UUID) (*StockSummaryResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	asOf := s.now()
	total, err := s.batchRepo.SumAvailableByProduct(ctx, productID, asOf)
	if err != nil {
		return nil, err
	}
	count, err := s.batchRepo.CountByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &StockSummaryResponse{
		ProductID:      productID,
		TotalAvailable: total,
		BatchCount:     count,
		AsOf:           asOf,
	}, nil
}

// ListAdjustments fetches the adjustment history for one batch
func (s *LedgerService) ListAdjustments(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]*AdjustmentResponse, error) {
	adjustments, err := s.adjustmentRepo.FindByBatch(ctx, batchID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		responses = append(responses, ToAdjustmentResponse(&adjustments[i]))
	}
	return responses, nil
}

// checkThreshold publishes a StockBelowThreshold event when the
// product's sellable total has fallen to or under its configured level.
func (s *LedgerService) checkThreshold(ctx context.Context, productID uuid.UUID) {
	if s.eventPublisher == nil {
		return
	}
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return
	}
	threshold, ok := product.LowStockThreshold()
	if !ok {
		return
	}
	total, err := s.batchRepo.SumAvailableByProduct(ctx, productID, s.now())
	if err != nil {
		return
	}
	if total <= threshold {
		s.publish(ctx, inventory.NewStockBelowThresholdEvent(productID, total, threshold))
	}
}

func (s *LedgerService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	// Event delivery failures are logged by the bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
