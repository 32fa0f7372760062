package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryAdjustment(t *testing.T) {
	batchID, productID, userID := uuid.New(), uuid.New(), uuid.New()

	t.Run("creates adjustment record", func(t *testing.T) {
		adj, err := NewInventoryAdjustment(batchID, productID, userID, AdjustmentTypeDamagedGoods, -3, "dropped carton")
		require.NoError(t, err)
		assert.Equal(t, -3, adj.QuantityChange)
		assert.Equal(t, AdjustmentTypeDamagedGoods, adj.Type)
	})

	t.Run("rejects zero change", func(t *testing.T) {
		_, err := NewInventoryAdjustment(batchID, productID, userID, AdjustmentTypeCountVariance, 0, "")
		require.Error(t, err)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, err := NewInventoryAdjustment(batchID, productID, userID, AdjustmentType("SHRINK"), 1, "")
		require.Error(t, err)
	})

	t.Run("OTHER requires a reason", func(t *testing.T) {
		_, err := NewInventoryAdjustment(batchID, productID, userID, AdjustmentTypeOther, 1, " ")
		require.Error(t, err)
	})
}

func TestAdjustmentType(t *testing.T) {
	t.Run("IsValid covers all declared types", func(t *testing.T) {
		for _, typ := range []AdjustmentType{
			AdjustmentTypeCountVariance, AdjustmentTypeDamagedGoods,
			AdjustmentTypeExpiredRemoval, AdjustmentTypeInitialStock, AdjustmentTypeOther,
		} {
			assert.True(t, typ.IsValid(), typ.String())
		}
	})
}
