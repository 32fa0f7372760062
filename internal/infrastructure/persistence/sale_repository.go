package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phf/backend/internal/domain/sales"
	"github.com/phf/backend/internal/domain/shared"
)

// GormSaleRepository implements SaleTransactionRepository using GORM.
// Sales are append-only.
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// orderLines keeps reloaded sale lines in their insertion order
func orderLines(db *gorm.DB) *gorm.DB {
	return db.Order("line_number ASC")
}

// FindByID finds a sale with its lines
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SaleTransaction, error) {
	var sale sales.SaleTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderLines).
		First(&sale, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindByReceiptNumber finds a sale by its receipt number
func (r *GormSaleRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*sales.SaleTransaction, error) {
	var sale sales.SaleTransaction
	if err := r.db.WithContext(ctx).
		Preload("Lines", orderLines).
		Where("receipt_number = ?", receiptNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*sales.SaleTransaction, error) {
	var results []*sales.SaleTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.SaleTransaction{}).Preload("Lines", orderLines),
		filter,
	)

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// FindBySoldAtRange finds sales committed within [from, to)
func (r *GormSaleRepository) FindBySoldAtRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*sales.SaleTransaction, error) {
	var results []*sales.SaleTransaction
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.SaleTransaction{}).
			Preload("Lines", orderLines).
			Where("sold_at >= ? AND sold_at < ?", from, to),
		filter,
	)

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ExistsByReceiptNumber checks receipt-number uniqueness
func (r *GormSaleRepository) ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.SaleTransaction{}).
		Where("receipt_number = ?", receiptNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save inserts a committed sale and its lines
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.SaleTransaction) error {
	err := r.db.WithContext(ctx).Create(sale).Error
	if err != nil && isDuplicateKey(err) {
		return shared.NewDuplicateKeyError("sale", sale.ReceiptNumber)
	}
	return err
}

// Count counts all recorded sales
func (r *GormSaleRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.SaleTransaction{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number ILIKE ? OR customer_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		if key == "payment_method" {
			query = query.Where("payment_method = ?", value)
		}
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "sold_at")
	orderDir := filter.OrderDir
	if filter.OrderBy == "" && orderDir == "" {
		orderDir = "desc"
	}
	return query.Order(orderBy + " " + ValidateSortOrder(orderDir))
}

// Ensure GormSaleRepository implements SaleTransactionRepository
var _ sales.SaleTransactionRepository = (*GormSaleRepository)(nil)
