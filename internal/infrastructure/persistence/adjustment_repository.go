package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

// GormAdjustmentRepository implements AdjustmentRepository using GORM.
// Adjustments are append-only; there is no update or delete.
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// Create inserts a new adjustment record
func (r *GormAdjustmentRepository) Create(ctx context.Context, adjustment *inventory.InventoryAdjustment) error {
	return r.db.WithContext(ctx).Create(adjustment).Error
}

// FindByBatch finds adjustments recorded against a batch
func (r *GormAdjustmentRepository) FindByBatch(ctx context.Context, batchID uuid.UUID, filter shared.Filter) ([]inventory.InventoryAdjustment, error) {
	var adjustments []inventory.InventoryAdjustment
	query := r.applyFilter(
		r.db.WithContext(ctx).Where("batch_id = ?", batchID),
		filter,
	)
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// FindByProduct finds adjustments recorded against a product
func (r *GormAdjustmentRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.InventoryAdjustment, error) {
	var adjustments []inventory.InventoryAdjustment
	query := r.applyFilter(
		r.db.WithContext(ctx).Where("product_id = ?", productID),
		filter,
	)
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

func (r *GormAdjustmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	for key, value := range filter.Filters {
		if key == "type" {
			query = query.Where("type = ?", value)
		}
	}

	return query.Order("created_at DESC")
}

// Ensure GormAdjustmentRepository implements AdjustmentRepository
var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
