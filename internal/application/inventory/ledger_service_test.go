package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

var ledgerNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func newLedgerService(batchRepo *MockBatchRepository, adjustmentRepo *MockAdjustmentRepository, productRepo *MockProductRepository) *LedgerService {
	service := NewLedgerService(NewNoOpTransactionScope(batchRepo, adjustmentRepo), batchRepo, adjustmentRepo, productRepo)
	service.SetClock(func() time.Time { return ledgerNow })
	return service
}

func activeProduct(t *testing.T) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("PAR-500", "Paracetamol", "Paracetamol", "Tablet", "500mg", catalog.ProductCategoryOverTheCounter)
	require.NoError(t, err)
	return product
}

func ledgerBatch(t *testing.T, productID uuid.UUID, quantity int) *inventory.InventoryBatch {
	t.Helper()
	batch, err := inventory.NewInventoryBatch(productID, "PO-2025-0001-L1", quantity,
		decimal.NewFromFloat(2.00), decimal.NewFromFloat(2.40),
		ledgerNow.AddDate(0, 0, -30), ledgerNow.AddDate(0, 0, 700))
	require.NoError(t, err)
	return batch
}

func TestLedgerServiceRecordBatch(t *testing.T) {
	ctx := context.Background()

	validRequest := func(productID uuid.UUID) RecordBatchRequest {
		return RecordBatchRequest{
			ProductID:    productID,
			BatchNumber:  "OPEN-001",
			Quantity:     50,
			CostPrice:    decimal.NewFromFloat(1.50),
			SellingPrice: decimal.NewFromFloat(1.80),
			ReceivedDate: ledgerNow,
			ExpiryDate:   ledgerNow.AddDate(2, 0, 0),
			PerformedBy:  uuid.New(),
		}
	}

	t.Run("creates the batch and an opening-stock adjustment", func(t *testing.T) {
		batchRepo := new(MockBatchRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

		product := activeProduct(t)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("ExistsByProductAndBatchNumber", ctx, product.ID, "OPEN-001").Return(false, nil)
		batchRepo.On("Create", ctx, mock.AnythingOfType("*inventory.InventoryBatch")).Return(nil)
		adjustmentRepo.On("Create", ctx, mock.MatchedBy(func(a *inventory.InventoryAdjustment) bool {
			return a.Type == inventory.AdjustmentTypeInitialStock && a.QuantityChange == 50
		})).Return(nil)

		resp, err := service.RecordBatch(ctx, validRequest(product.ID))
		require.NoError(t, err)
		assert.Equal(t, 50, resp.QuantityOnHand)
		assert.True(t, resp.Active)
		batchRepo.AssertExpectations(t)
		adjustmentRepo.AssertExpectations(t)
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		batchRepo := new(MockBatchRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

		product := activeProduct(t)
		product.Deactivate()
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err := service.RecordBatch(ctx, validRequest(product.ID))
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.ErrorCode(err))
	})

	t.Run("rejects a duplicate batch number per product", func(t *testing.T) {
		batchRepo := new(MockBatchRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

		product := activeProduct(t)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("ExistsByProductAndBatchNumber", ctx, product.ID, "OPEN-001").Return(true, nil)

		_, err := service.RecordBatch(ctx, validRequest(product.ID))
		require.Error(t, err)
		assert.Equal(t, shared.CodeDuplicateKey, shared.ErrorCode(err))
	})
}

func TestLedgerServiceAdjust(t *testing.T) {
	ctx := context.Background()

	t.Run("applies the change and records the adjustment", func(t *testing.T) {
		batchRepo := new(MockBatchRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

		batch := ledgerBatch(t, uuid.New(), 30)
		batchRepo.On("FindByID", ctx, batch.ID).Return(batch, nil)
		batchRepo.On("Save", ctx, batch).Return(nil)
		adjustmentRepo.On("Create", ctx, mock.AnythingOfType("*inventory.InventoryAdjustment")).Return(nil)

		resp, err := service.Adjust(ctx, AdjustStockRequest{
			BatchID:     batch.ID,
			Type:        "DAMAGED_GOODS",
			Change:      -5,
			Reason:      "water damage",
			PerformedBy: uuid.New(),
		})
		require.NoError(t, err)
		assert.Equal(t, -5, resp.QuantityChange)
		assert.Equal(t, 25, batch.QuantityOnHand)
	})

	t.Run("rejects a change that would drive the balance negative", func(t *testing.T) {
		batchRepo := new(MockBatchRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

		batch := ledgerBatch(t, uuid.New(), 3)
		batchRepo.On("FindByID", ctx, batch.ID).Return(batch, nil)

		_, err := service.Adjust(ctx, AdjustStockRequest{
			BatchID:     batch.ID,
			Type:        "COUNT_VARIANCE",
			Change:      -10,
			PerformedBy: uuid.New(),
		})
		require.Error(t, err)
		assert.Equal(t, 3, batch.QuantityOnHand)
		adjustmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("publishes a below-threshold event after a downward adjustment", func(t *testing.T) {
		batchRepo := new(MockBatchRepository)
		adjustmentRepo := new(MockAdjustmentRepository)
		productRepo := new(MockProductRepository)
		service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

		publisher := new(MockEventPublisher)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)
		service.SetEventPublisher(publisher)

		product := activeProduct(t)
		reorder := 20
		require.NoError(t, product.ConfigureAlerts(&reorder, nil, nil))

		batch := ledgerBatch(t, product.ID, 30)
		batchRepo.On("FindByID", ctx, batch.ID).Return(batch, nil)
		batchRepo.On("Save", ctx, batch).Return(nil)
		adjustmentRepo.On("Create", ctx, mock.AnythingOfType("*inventory.InventoryAdjustment")).Return(nil)
		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		batchRepo.On("SumAvailableByProduct", ctx, product.ID, ledgerNow).Return(15, nil)

		_, err := service.Adjust(ctx, AdjustStockRequest{
			BatchID:     batch.ID,
			Type:        "EXPIRED_REMOVAL",
			Change:      -15,
			PerformedBy: uuid.New(),
		})
		require.NoError(t, err)

		var belowThreshold *inventory.StockBelowThresholdEvent
		for _, event := range publisher.Events {
			if e, ok := event.(*inventory.StockBelowThresholdEvent); ok {
				belowThreshold = e
			}
		}
		require.NotNil(t, belowThreshold)
		assert.Equal(t, 15, belowThreshold.TotalStock)
		assert.Equal(t, 20, belowThreshold.Threshold)
	})
}

func TestLedgerServiceStockSummary(t *testing.T) {
	ctx := context.Background()
	batchRepo := new(MockBatchRepository)
	adjustmentRepo := new(MockAdjustmentRepository)
	productRepo := new(MockProductRepository)
	service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

	product := activeProduct(t)
	productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
	batchRepo.On("SumAvailableByProduct", ctx, product.ID, ledgerNow).Return(42, nil)
	batchRepo.On("CountByProduct", ctx, product.ID).Return(int64(3), nil)

	summary, err := service.StockSummary(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 42, summary.TotalAvailable)
	assert.Equal(t, int64(3), summary.BatchCount)
}

func TestLedgerServiceAvailableBatches(t *testing.T) {
	ctx := context.Background()
	batchRepo := new(MockBatchRepository)
	adjustmentRepo := new(MockAdjustmentRepository)
	productRepo := new(MockProductRepository)
	service := newLedgerService(batchRepo, adjustmentRepo, productRepo)

	productID := uuid.New()
	batch := ledgerBatch(t, productID, 10)
	batchRepo.On("FindAvailableByProduct", ctx, productID, ledgerNow).Return([]inventory.InventoryBatch{*batch}, nil)

	batches, err := service.AvailableBatches(ctx, productID)
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, 10, batches[0].QuantityOnHand)
	assert.False(t, batches[0].Expired)
}
