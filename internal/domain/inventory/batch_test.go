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

var testDay = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestBatch(t *testing.T, quantity int, received, expiry time.Time) *InventoryBatch {
	t.Helper()
	b, err := NewInventoryBatch(uuid.New(), "LOT-001", quantity,
		decimal.NewFromFloat(4.50), decimal.NewFromFloat(5.40), received, expiry)
	require.NoError(t, err)
	return b
}

func TestNewInventoryBatch(t *testing.T) {
	t.Run("creates active batch with normalized dates", func(t *testing.T) {
		received := time.Date(2025, 6, 1, 15, 30, 0, 0, time.FixedZone("X", 3600))
		b := newTestBatch(t, 100, received, received.AddDate(2, 0, 0))
		assert.True(t, b.Active)
		assert.Equal(t, 100, b.QuantityOnHand)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), b.ReceivedDate)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.New(), "L1", 0, decimal.NewFromInt(1), decimal.NewFromInt(2), testDay, testDay)
		require.Error(t, err)
		assert.Equal(t, shared.CodeValidation, shared.ErrorCode(err))
	})

	t.Run("rejects expiry before received date", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.New(), "L1", 10, decimal.NewFromInt(1), decimal.NewFromInt(2), testDay, testDay.AddDate(0, 0, -1))
		require.Error(t, err)
	})

	t.Run("accepts expiry equal to received date", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.New(), "L1", 10, decimal.NewFromInt(1), decimal.NewFromInt(2), testDay, testDay)
		require.NoError(t, err)
	})

	t.Run("rejects non-positive prices", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.New(), "L1", 10, decimal.Zero, decimal.NewFromInt(2), testDay, testDay)
		require.Error(t, err)
		_, err = NewInventoryBatch(uuid.New(), "L1", 10, decimal.NewFromInt(1), decimal.Zero, testDay, testDay)
		require.Error(t, err)
	})
}

func TestInventoryBatchDeduct(t *testing.T) {
	t.Run("deducts and returns new balance", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		remaining, err := b.Deduct(4)
		require.NoError(t, err)
		assert.Equal(t, 6, remaining)
		assert.Equal(t, 6, b.QuantityOnHand)
	})

	t.Run("can deduct down to zero", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		remaining, err := b.Deduct(10)
		require.NoError(t, err)
		assert.Equal(t, 0, remaining)
	})

	t.Run("rejects deduction exceeding on-hand", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		_, err := b.Deduct(11)
		require.Error(t, err)
		assert.Equal(t, shared.CodeInsufficientStock, shared.ErrorCode(err))
		assert.Equal(t, 10, b.QuantityOnHand)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		_, err := b.Deduct(0)
		require.Error(t, err)
	})
}

func TestInventoryBatchExpiry(t *testing.T) {
	b := newTestBatch(t, 10, testDay, testDay.AddDate(0, 0, 30))

	t.Run("not expired on the expiry date itself", func(t *testing.T) {
		assert.False(t, b.IsExpired(testDay.AddDate(0, 0, 30)))
	})

	t.Run("expired the day after", func(t *testing.T) {
		assert.True(t, b.IsExpired(testDay.AddDate(0, 0, 31)))
	})

	t.Run("near expiry is inclusive of the window boundary", func(t *testing.T) {
		assert.True(t, b.IsNearExpiry(testDay, 30))
		assert.True(t, b.IsNearExpiry(testDay.AddDate(0, 0, 10), 20))
		assert.False(t, b.IsNearExpiry(testDay, 29))
	})

	t.Run("expired batches are never near expiry", func(t *testing.T) {
		assert.False(t, b.IsNearExpiry(testDay.AddDate(0, 0, 31), 90))
	})

	t.Run("days until expiry", func(t *testing.T) {
		assert.Equal(t, 30, b.DaysUntilExpiry(testDay))
		assert.Equal(t, 0, b.DaysUntilExpiry(testDay.AddDate(0, 0, 30)))
	})
}

func TestInventoryBatchAvailability(t *testing.T) {
	t.Run("available when active with stock and not expired", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(0, 0, 10))
		assert.True(t, b.IsAvailable(testDay))
	})

	t.Run("unavailable when expired", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(0, 0, 10))
		assert.False(t, b.IsAvailable(testDay.AddDate(0, 0, 11)))
	})

	t.Run("unavailable at zero quantity", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(0, 0, 10))
		_, err := b.Deduct(10)
		require.NoError(t, err)
		assert.False(t, b.IsAvailable(testDay))
	})

	t.Run("unavailable when deactivated", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(0, 0, 10))
		b.Deactivate()
		assert.False(t, b.IsAvailable(testDay))
	})
}

func TestInventoryBatchApplyAdjustment(t *testing.T) {
	t.Run("applies negative correction", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		require.NoError(t, b.ApplyAdjustment(-3))
		assert.Equal(t, 7, b.QuantityOnHand)
	})

	t.Run("rejects correction below zero", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		err := b.ApplyAdjustment(-11)
		require.Error(t, err)
		assert.Equal(t, 10, b.QuantityOnHand)
	})

	t.Run("rejects zero change", func(t *testing.T) {
		b := newTestBatch(t, 10, testDay, testDay.AddDate(1, 0, 0))
		require.Error(t, b.ApplyAdjustment(0))
	})
}
