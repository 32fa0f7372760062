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
)

var alertNow = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func newAlertService(productRepo *MockProductRepository, batchRepo *MockBatchRepository) *AlertService {
	service := NewAlertService(productRepo, batchRepo)
	service.SetClock(func() time.Time { return alertNow })
	return service
}

func thresholdProduct(t *testing.T, sku string, reorderLevel *int, minStock *int, expiryAlertDays *int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(sku, "Product "+sku, "Ingredient", "Tablet", "100mg", catalog.ProductCategoryOverTheCounter)
	require.NoError(t, err)
	require.NoError(t, product.ConfigureAlerts(reorderLevel, minStock, expiryAlertDays))
	return product
}

func expiringBatch(t *testing.T, productID uuid.UUID, quantity, daysUntilExpiry int) *inventory.InventoryBatch {
	t.Helper()
	batch, err := inventory.NewInventoryBatch(productID, "B-"+uuid.NewString()[:8], quantity,
		decimal.NewFromFloat(1.00), decimal.NewFromFloat(1.20),
		alertNow.AddDate(0, 0, -100), alertNow.AddDate(0, 0, daysUntilExpiry))
	require.NoError(t, err)
	return batch
}

func TestAlertServiceEvaluateLowStock(t *testing.T) {
	ctx := context.Background()

	t.Run("reports products at or under their threshold", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		batchRepo := new(MockBatchRepository)
		service := newAlertService(productRepo, batchRepo)

		reorder := 20
		low := thresholdProduct(t, "LOW-1", &reorder, nil, nil)
		atThreshold := thresholdProduct(t, "EDGE-1", &reorder, nil, nil)
		healthy := thresholdProduct(t, "OK-1", &reorder, nil, nil)
		unconfigured, err := catalog.NewProduct("NONE-1", "No thresholds", "Ingredient", "Tablet", "100mg", catalog.ProductCategoryOverTheCounter)
		require.NoError(t, err)

		products := []catalog.Product{*low, *atThreshold, *healthy, *unconfigured}
		productRepo.On("FindActive", ctx, mock.Anything).Return(products, nil).Once()

		batchRepo.On("SumAvailableByProduct", ctx, low.ID, alertNow).Return(5, nil)
		batchRepo.On("SumAvailableByProduct", ctx, atThreshold.ID, alertNow).Return(20, nil)
		batchRepo.On("SumAvailableByProduct", ctx, healthy.ID, alertNow).Return(21, nil)

		alerts, err := service.EvaluateLowStock(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 2)
		assert.Equal(t, "LOW-1", alerts[0].SKU)
		assert.Equal(t, "EDGE-1", alerts[1].SKU)
		assert.Equal(t, 20, alerts[1].TotalAvailable)
		assert.Equal(t, SeverityWarning, alerts[0].Severity)
	})

	t.Run("reorder level wins over min stock", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		batchRepo := new(MockBatchRepository)
		service := newAlertService(productRepo, batchRepo)

		reorder, minStock := 10, 50
		product := thresholdProduct(t, "BOTH-1", &reorder, &minStock, nil)

		productRepo.On("FindActive", ctx, mock.Anything).Return([]catalog.Product{*product}, nil).Once()
		batchRepo.On("SumAvailableByProduct", ctx, product.ID, alertNow).Return(30, nil)

		// 30 is under min stock but over the reorder level; no alert
		alerts, err := service.EvaluateLowStock(ctx)
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("zero stock with a threshold is always reported", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		batchRepo := new(MockBatchRepository)
		service := newAlertService(productRepo, batchRepo)

		minStock := 1
		product := thresholdProduct(t, "ZERO-1", nil, &minStock, nil)

		productRepo.On("FindActive", ctx, mock.Anything).Return([]catalog.Product{*product}, nil).Once()
		batchRepo.On("SumAvailableByProduct", ctx, product.ID, alertNow).Return(0, nil)

		alerts, err := service.EvaluateLowStock(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, 0, alerts[0].TotalAvailable)
		assert.Equal(t, SeverityCritical, alerts[0].Severity)
	})
}

func TestAlertServiceEvaluateNearExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("classifies severity by days until expiry", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		batchRepo := new(MockBatchRepository)
		service := newAlertService(productRepo, batchRepo)

		window := 30
		product := thresholdProduct(t, "EXP-1", nil, nil, &window)

		critical := expiringBatch(t, product.ID, 8, 5)
		warning := expiringBatch(t, product.ID, 12, 20)

		productRepo.On("FindActive", ctx, mock.Anything).Return([]catalog.Product{*product}, nil).Once()
		batchRepo.On("FindExpiringWithin", ctx, alertNow, DefaultExpiryWindowDays).
			Return([]inventory.InventoryBatch{*critical, *warning}, nil)

		alerts, err := service.EvaluateNearExpiry(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 2)

		bySeverity := map[string]NearExpiryAlert{}
		for _, a := range alerts {
			bySeverity[a.Severity] = a
		}
		assert.Equal(t, 5, bySeverity[SeverityCritical].DaysUntilExpiry)
		assert.Equal(t, 20, bySeverity[SeverityWarning].DaysUntilExpiry)
	})

	t.Run("respects the product's own window", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		batchRepo := new(MockBatchRepository)
		service := newAlertService(productRepo, batchRepo)

		window := 10
		product := thresholdProduct(t, "EXP-2", nil, nil, &window)
		outside := expiringBatch(t, product.ID, 6, 15)

		productRepo.On("FindActive", ctx, mock.Anything).Return([]catalog.Product{*product}, nil).Once()
		batchRepo.On("FindExpiringWithin", ctx, alertNow, DefaultExpiryWindowDays).
			Return([]inventory.InventoryBatch{*outside}, nil)

		alerts, err := service.EvaluateNearExpiry(ctx)
		require.NoError(t, err)
		assert.Empty(t, alerts)
	})

	t.Run("uses the default window for products without one", func(t *testing.T) {
		productRepo := new(MockProductRepository)
		batchRepo := new(MockBatchRepository)
		service := newAlertService(productRepo, batchRepo)

		product, err := catalog.NewProduct("EXP-3", "Defaulted", "Ingredient", "Tablet", "100mg", catalog.ProductCategoryOverTheCounter)
		require.NoError(t, err)
		batch := expiringBatch(t, product.ID, 4, 60)

		productRepo.On("FindActive", ctx, mock.Anything).Return([]catalog.Product{*product}, nil).Once()
		batchRepo.On("FindExpiringWithin", ctx, alertNow, DefaultExpiryWindowDays).
			Return([]inventory.InventoryBatch{*batch}, nil)

		alerts, err := service.EvaluateNearExpiry(ctx)
		require.NoError(t, err)
		require.Len(t, alerts, 1)
		assert.Equal(t, 60, alerts[0].DaysUntilExpiry)
	})
}
