package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/phf/backend/internal/domain/audit"
	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/domain/sales"
	"github.com/phf/backend/internal/domain/shared"
)

// MockEntryRepository is a mock implementation of audit.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) FindByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, filter shared.Filter) ([]*audit.Entry, error) {
	args := m.Called(ctx, resourceType, resourceID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*audit.Entry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*audit.Entry), args.Error(1)
}

func (m *MockEntryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func recorderOrder(t *testing.T) *procurement.PurchaseOrder {
	t.Helper()
	order, err := procurement.NewPurchaseOrder("PO-2025-0007", uuid.New(), "MediCorp",
		time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return order
}

func TestRecorderHandle(t *testing.T) {
	ctx := context.Background()

	t.Run("records a receive as a RECEIVE entry", func(t *testing.T) {
		repo := new(MockEntryRepository)
		recorder := NewRecorder(repo, zap.NewNop())
		order := recorderOrder(t)

		var saved *audit.Entry
		repo.On("Save", ctx, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*audit.Entry) }).
			Return(nil)

		event := procurement.NewPurchaseOrderReceivedEvent(order)
		require.NoError(t, recorder.Handle(ctx, event))

		require.NotNil(t, saved)
		assert.Equal(t, audit.ActionReceive, saved.Action)
		assert.Equal(t, "PurchaseOrder", saved.ResourceType)
		assert.Equal(t, order.ID, saved.ResourceID)
		assert.Contains(t, saved.Detail, "PO-2025-0007")
	})

	t.Run("records a completed sale as a SALE entry", func(t *testing.T) {
		repo := new(MockEntryRepository)
		recorder := NewRecorder(repo, zap.NewNop())

		sale, err := sales.NewSaleTransaction("RCP-20250601-0001",
			time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), sales.SaleDetails{}, sales.PaymentMethodCash,
			decimal.Zero, []sales.LineDraw{{
				ProductID:   uuid.New(),
				ProductName: "Paracetamol",
				BatchID:     uuid.New(),
				BatchNumber: "L1",
				Quantity:    2,
				UnitPrice:   decimal.NewFromFloat(2.40),
			}})
		require.NoError(t, err)

		var saved *audit.Entry
		repo.On("Save", ctx, mock.AnythingOfType("*audit.Entry")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*audit.Entry) }).
			Return(nil)

		require.NoError(t, recorder.Handle(ctx, sale.GetDomainEvents()[0]))

		require.NotNil(t, saved)
		assert.Equal(t, audit.ActionSale, saved.Action)
		assert.Contains(t, saved.Detail, "RCP-20250601-0001")
	})

	t.Run("persistence failures are swallowed", func(t *testing.T) {
		repo := new(MockEntryRepository)
		recorder := NewRecorder(repo, zap.NewNop())

		repo.On("Save", ctx, mock.AnythingOfType("*audit.Entry")).Return(errors.New("db down"))

		event := procurement.NewPurchaseOrderCreatedEvent(recorderOrder(t))
		assert.NoError(t, recorder.Handle(ctx, event))
	})

	t.Run("unknown events are ignored", func(t *testing.T) {
		repo := new(MockEntryRepository)
		recorder := NewRecorder(repo, zap.NewNop())

		event := shared.NewBaseDomainEvent("catalog.product.created", "Product", uuid.New())
		assert.NoError(t, recorder.Handle(ctx, &event))
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
