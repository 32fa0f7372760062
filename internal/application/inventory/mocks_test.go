package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

// MockBatchRepository is a mock implementation of inventory.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindAvailableByProduct(ctx context.Context, productID uuid.UUID, asOf time.Time) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, productID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindByProductAndBatchNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (*inventory.InventoryBatch, error) {
	args := m.Called(ctx, productID, batchNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) FindExpiringWithin(ctx context.Context, asOf time.Time, windowDays int) ([]inventory.InventoryBatch, error) {
	args := m.Called(ctx, asOf, windowDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryBatch), args.Error(1)
}

func (m *MockBatchRepository) ExistsByProductAndBatchNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (bool, error) {
	args := m.Called(ctx, productID, batchNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockBatchRepository) Create(ctx context.Context, batch *inventory.InventoryBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) DeductQuantity(ctx context.Context, batchID uuid.UUID, quantity int) (int, error) {
	args := m.Called(ctx, batchID, quantity)
	return args.Int(0), args.Error(1)
}

func (m *MockBatchRepository) SumAvailableByProduct(ctx context.Context, productID uuid.UUID, asOf time.Time) (int, error) {
	args := m.Called(ctx, productID, asOf)
	return args.Int(0), args.Error(1)
}

func (m *MockBatchRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}

// MockAdjustmentRepository is a mock implementation of inventory.AdjustmentRepository
type MockAdjustmentRepository struct {
	mock.Mock
}

func (m *MockAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

func (m *MockAdjustmentRepository) FindByBatch(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]inventory.InventoryAdjustment, error) {
	args := m.Called(ctx, batchID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryAdjustment), args.Error(1)
}

func (m *MockAdjustmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.InventoryAdjustment, error) {
	args := m.Called(ctx, productID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.InventoryAdjustment), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindActive(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mock.Mock
	Events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.Events = append(m.Events, events...)
	args := m.Called(ctx, events)
	return args.Error(0)
}
