package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	if err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindByProduct finds all batches for a product, including expired and
// inactive ones
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.InventoryBatch, error) {
	var batches []inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("expiry_date ASC, received_date ASC, batch_number ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindAvailableByProduct finds active batches with positive quantity that
// are not expired as of the given date, in first-expired-first-out order
func (r *GormBatchRepository) FindAvailableByProduct(ctx context.Context, productID uuid.UUID, asOf time.Time) ([]inventory.InventoryBatch, error) {
	var batches []inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND active = ? AND quantity_on_hand > 0 AND expiry_date >= ?",
			productID, true, inventory.NormalizeDate(asOf)).
		Order("expiry_date ASC, received_date ASC, batch_number ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// FindByProductAndBatchNumber finds a batch by its per-product batch number
func (r *GormBatchRepository) FindByProductAndBatchNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (*inventory.InventoryBatch, error) {
	var batch inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND batch_number = ?", productID, batchNumber).
		First(&batch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindExpiringWithin finds available batches expiring within the window
func (r *GormBatchRepository) FindExpiringWithin(ctx context.Context, asOf time.Time, windowDays int) ([]inventory.InventoryBatch, error) {
	today := inventory.NormalizeDate(asOf)
	horizon := today.AddDate(0, 0, windowDays)

	var batches []inventory.InventoryBatch
	if err := r.db.WithContext(ctx).
		Where("active = ? AND quantity_on_hand > 0 AND expiry_date >= ? AND expiry_date <= ?",
			true, today, horizon).
		Order("expiry_date ASC, batch_number ASC").
		Find(&batches).Error; err != nil {
		return nil, err
	}
	return batches, nil
}

// ExistsByProductAndBatchNumber checks batch-number uniqueness per product
func (r *GormBatchRepository) ExistsByProductAndBatchNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryBatch{}).
		Where("product_id = ? AND batch_number = ?", productID, batchNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts a new batch
func (r *GormBatchRepository) Create(ctx context.Context, batch *inventory.InventoryBatch) error {
	err := r.db.WithContext(ctx).Create(batch).Error
	if err != nil && isDuplicateKey(err) {
		return shared.NewDuplicateKeyError("batch", batch.BatchNumber)
	}
	return err
}

// Save updates an existing batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.InventoryBatch) error {
	return r.db.WithContext(ctx).Save(batch).Error
}

// DeductQuantity atomically decrements a batch's on-hand quantity. The
// UPDATE is guarded so the balance can never go negative under concurrent
// deductions; losing racers see an insufficient stock error and can replan
// against the fresh ledger state.
func (r *GormBatchRepository) DeductQuantity(ctx context.Context, batchID uuid.UUID, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, shared.NewValidationError("quantity", "deduction must be positive")
	}

	result := r.db.WithContext(ctx).
		Model(&inventory.InventoryBatch{}).
		Where("id = ? AND quantity_on_hand >= ?", batchID, quantity).
		UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		// Distinguish a missing batch from a guard rejection
		batch, err := r.FindByID(ctx, batchID)
		if err != nil {
			return 0, err
		}
		return batch.QuantityOnHand, shared.NewInsufficientStockError(quantity, batch.QuantityOnHand)
	}

	var remaining int
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryBatch{}).
		Where("id = ?", batchID).
		Pluck("quantity_on_hand", &remaining).Error; err != nil {
		return 0, err
	}
	return remaining, nil
}

// SumAvailableByProduct sums on-hand quantity over active, non-expired batches
func (r *GormBatchRepository) SumAvailableByProduct(ctx context.Context, productID uuid.UUID, asOf time.Time) (int, error) {
	var total *int
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryBatch{}).
		Where("product_id = ? AND active = ? AND expiry_date >= ?",
			productID, true, inventory.NormalizeDate(asOf)).
		Select("SUM(quantity_on_hand)").
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// CountByProduct counts all batches recorded for a product
func (r *GormBatchRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.InventoryBatch{}).
		Where("product_id = ?", productID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
