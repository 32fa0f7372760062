package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// BatchRepository defines the interface for inventory batch persistence
type BatchRepository interface {
	// FindByID finds a batch by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryBatch, error)

	// FindByProduct finds all batches for a product, including expired and inactive ones
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]InventoryBatch, error)

	// FindAvailableByProduct finds active batches with positive quantity that
	// are not expired as of the given date, ordered FEFO (expiry, then
	// received date)
	FindAvailableByProduct(ctx context.Context, productID uuid.UUID, asOf time.Time) ([]InventoryBatch, error)

	// FindByProductAndBatchNumber finds a batch by its per-product batch number
	FindByProductAndBatchNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (*InventoryBatch, error)

	// FindExpiringWithin finds available batches expiring within the window
	FindExpiringWithin(ctx context.Context, asOf time.Time, windowDays int) ([]InventoryBatch, error)

	// ExistsByProductAndBatchNumber checks batch-number uniqueness per product
	ExistsByProductAndBatchNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (bool, error)

	// Create inserts a new batch
	Create(ctx context.Context, batch *InventoryBatch) error

	// Save updates an existing batch
	Save(ctx context.Context, batch *InventoryBatch) error

	// DeductQuantity atomically decrements a batch's on-hand quantity.
	// The decrement is guarded so the balance can never go negative under
	// concurrent access; shared.ErrInsufficientStock is returned when the
	// guard rejects the update. Returns the new on-hand quantity.
	DeductQuantity(ctx context.Context, batchID uuid.UUID, quantity int) (int, error)

	// SumAvailableByProduct sums on-hand quantity over active, non-expired batches
	SumAvailableByProduct(ctx context.Context, productID uuid.UUID, asOf time.Time) (int, error)

	// CountByProduct counts all batches recorded for a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}

// AdjustmentRepository defines the interface for adjustment persistence.
// Adjustments are append-only.
type AdjustmentRepository interface {
	// Create inserts a new adjustment record
	Create(ctx context.Context, adjustment *InventoryAdjustment) error

	// FindByBatch finds adjustments recorded against a batch
	FindByBatch(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]InventoryAdjustment, error)

	// FindByProduct finds adjustments recorded against a product
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]InventoryAdjustment, error)
}
