package persistence

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/domain/shared"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&procurement.PurchaseOrder{},
		&procurement.PurchaseOrderLine{},
	))
	return db
}

func newStoredOrder(t *testing.T, code string) *procurement.PurchaseOrder {
	t.Helper()

	order, err := procurement.NewPurchaseOrder(
		code,
		uuid.New(),
		"MediCorp Distribution",
		time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	_, err = order.AddLine(uuid.New(), "Amoxicillin 500mg", 40, decimal.NewFromFloat(3.25))
	require.NoError(t, err)
	_, err = order.AddLine(uuid.New(), "Ibuprofen 200mg", 100, decimal.NewFromFloat(0.80))
	require.NoError(t, err)
	return order
}

func TestGormPurchaseOrderRepositorySaveAndFind(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	order := newStoredOrder(t, "PO-2025-0001")
	require.NoError(t, repo.Save(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "PO-2025-0001", loaded.OrderCode)
	assert.Equal(t, procurement.PurchaseOrderStatusDraft, loaded.Status)
	require.Len(t, loaded.Lines, 2)
	assert.Equal(t, 1, loaded.Lines[0].LineNumber)
	assert.Equal(t, "Amoxicillin 500mg", loaded.Lines[0].ProductName)

	byCode, err := repo.FindByOrderCode(ctx, "PO-2025-0001")
	require.NoError(t, err)
	assert.Equal(t, order.ID, byCode.ID)
}

func TestGormPurchaseOrderRepositorySaveReplacesLines(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	order := newStoredOrder(t, "PO-2025-0002")
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.ReplaceLines([]procurement.LineInput{
		{ProductID: uuid.New(), ProductName: "Paracetamol 500mg", Quantity: 60, UnitCost: decimal.NewFromFloat(0.50)},
	}))
	require.NoError(t, repo.Save(ctx, order))

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, "Paracetamol 500mg", loaded.Lines[0].ProductName)

	// Orphaned lines must not survive the replace
	var lineCount int64
	require.NoError(t, db.Model(&procurement.PurchaseOrderLine{}).Count(&lineCount).Error)
	assert.EqualValues(t, 1, lineCount)
}

func TestGormPurchaseOrderRepositoryDelete(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	order := newStoredOrder(t, "PO-2025-0003")
	require.NoError(t, repo.Save(ctx, order))
	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err := repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var lineCount int64
	require.NoError(t, db.Model(&procurement.PurchaseOrderLine{}).Count(&lineCount).Error)
	assert.Zero(t, lineCount)

	t.Run("missing order yields not found", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestGormPurchaseOrderRepositoryFindByStatus(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()

	draft := newStoredOrder(t, "PO-2025-0004")
	require.NoError(t, repo.Save(ctx, draft))

	sent := newStoredOrder(t, "PO-2025-0005")
	require.NoError(t, sent.Send(nil))
	require.NoError(t, repo.Save(ctx, sent))

	ordered, err := repo.FindByStatus(ctx, procurement.PurchaseOrderStatusOrdered, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, "PO-2025-0005", ordered[0].OrderCode)
}

func TestGormPurchaseOrderRepositoryGenerateOrderCode(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()
	year := time.Now().UTC().Year()

	t.Run("starts at one for an empty year", func(t *testing.T) {
		code, err := repo.GenerateOrderCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PO-%d-0001", year), code)
	})

	t.Run("continues after the highest existing code", func(t *testing.T) {
		order := newStoredOrder(t, fmt.Sprintf("PO-%d-0041", year))
		require.NoError(t, repo.Save(ctx, order))

		code, err := repo.GenerateOrderCode(ctx)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PO-%d-0042", year), code)
	})
}
