package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phf/backend/internal/domain/shared"
)

func makeBatch(t *testing.T, productID uuid.UUID, number string, quantity int, expiry time.Time) InventoryBatch {
	t.Helper()
	b, err := NewInventoryBatch(productID, number, quantity,
		decimal.NewFromFloat(2.00), decimal.NewFromFloat(2.40), testDay, expiry)
	require.NoError(t, err)
	return *b
}

func TestAllocateFEFO(t *testing.T) {
	productID := uuid.New()

	t.Run("draws from earliest-expiring batches first", func(t *testing.T) {
		batches := []InventoryBatch{
			makeBatch(t, productID, "L3", 5, testDay.AddDate(0, 3, 0)),
			makeBatch(t, productID, "L1", 5, testDay.AddDate(0, 1, 0)),
			makeBatch(t, productID, "L2", 5, testDay.AddDate(0, 2, 0)),
		}

		draws, err := AllocateFEFO(7, batches, testDay)
		require.NoError(t, err)
		require.Len(t, draws, 2)
		assert.Equal(t, "L1", draws[0].BatchNumber)
		assert.Equal(t, 5, draws[0].Quantity)
		assert.Equal(t, "L2", draws[1].BatchNumber)
		assert.Equal(t, 2, draws[1].Quantity)
	})

	t.Run("exact fit consumes a single batch", func(t *testing.T) {
		batches := []InventoryBatch{
			makeBatch(t, productID, "L1", 5, testDay.AddDate(0, 1, 0)),
			makeBatch(t, productID, "L2", 5, testDay.AddDate(0, 2, 0)),
		}

		draws, err := AllocateFEFO(5, batches, testDay)
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, "L1", draws[0].BatchNumber)
	})

	t.Run("fails all-or-nothing when stock is short", func(t *testing.T) {
		batches := []InventoryBatch{
			makeBatch(t, productID, "L1", 5, testDay.AddDate(0, 1, 0)),
			makeBatch(t, productID, "L2", 10, testDay.AddDate(0, 2, 0)),
		}

		draws, err := AllocateFEFO(20, batches, testDay)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.ErrorCode(err))
		assert.Nil(t, draws)
	})

	t.Run("skips expired batches even with stock", func(t *testing.T) {
		batches := []InventoryBatch{
			makeBatch(t, productID, "OLD", 50, testDay.AddDate(0, 0, 1)),
			makeBatch(t, productID, "NEW", 5, testDay.AddDate(0, 6, 0)),
		}

		draws, err := AllocateFEFO(5, batches, testDay.AddDate(0, 0, 2))
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, "NEW", draws[0].BatchNumber)
	})

	t.Run("ties on expiry break by received date", func(t *testing.T) {
		expiry := testDay.AddDate(0, 6, 0)
		older, err := NewInventoryBatch(productID, "OLDER", 5,
			decimal.NewFromInt(1), decimal.NewFromInt(2), testDay.AddDate(0, 0, -10), expiry)
		require.NoError(t, err)
		newer, err := NewInventoryBatch(productID, "NEWER", 5,
			decimal.NewFromInt(1), decimal.NewFromInt(2), testDay, expiry)
		require.NoError(t, err)

		draws, err := AllocateFEFO(3, []InventoryBatch{*newer, *older}, testDay)
		require.NoError(t, err)
		require.Len(t, draws, 1)
		assert.Equal(t, "OLDER", draws[0].BatchNumber)
	})

	t.Run("rejects non-positive request", func(t *testing.T) {
		_, err := AllocateFEFO(0, nil, testDay)
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.ErrorCode(err))
	})

	t.Run("carries batch prices into the draws", func(t *testing.T) {
		batches := []InventoryBatch{makeBatch(t, productID, "L1", 5, testDay.AddDate(0, 1, 0))}
		draws, err := AllocateFEFO(2, batches, testDay)
		require.NoError(t, err)
		assert.True(t, draws[0].SellingPrice.Equal(decimal.NewFromFloat(2.40)))
		assert.True(t, draws[0].UnitCost.Equal(decimal.NewFromFloat(2.00)))
	})
}

func TestAllocateFromBatch(t *testing.T) {
	productID := uuid.New()

	t.Run("draws the full quantity from the chosen batch", func(t *testing.T) {
		b := makeBatch(t, productID, "L1", 10, testDay.AddDate(0, 1, 0))
		draw, err := AllocateFromBatch(4, &b, testDay)
		require.NoError(t, err)
		assert.Equal(t, b.ID, draw.BatchID)
		assert.Equal(t, 4, draw.Quantity)
	})

	t.Run("does not top up from other batches", func(t *testing.T) {
		b := makeBatch(t, productID, "L1", 3, testDay.AddDate(0, 1, 0))
		_, err := AllocateFromBatch(4, &b, testDay)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.ErrorCode(err))
	})

	t.Run("rejects expired batch", func(t *testing.T) {
		b := makeBatch(t, productID, "L1", 10, testDay.AddDate(0, 0, 1))
		_, err := AllocateFromBatch(1, &b, testDay.AddDate(0, 0, 2))
		require.Error(t, err)
	})

	t.Run("rejects nil batch", func(t *testing.T) {
		_, err := AllocateFromBatch(1, nil, testDay)
		require.Error(t, err)
	})
}

func TestTotalAvailable(t *testing.T) {
	productID := uuid.New()
	batches := []InventoryBatch{
		makeBatch(t, productID, "L1", 5, testDay.AddDate(0, 0, 1)),
		makeBatch(t, productID, "L2", 7, testDay.AddDate(0, 6, 0)),
	}

	t.Run("sums only non-expired batches", func(t *testing.T) {
		assert.Equal(t, 12, TotalAvailable(batches, testDay))
		assert.Equal(t, 7, TotalAvailable(batches, testDay.AddDate(0, 0, 2)))
	})

	t.Run("ignores deactivated batches", func(t *testing.T) {
		batches[1].Deactivate()
		assert.Equal(t, 5, TotalAvailable(batches, testDay))
	})
}
