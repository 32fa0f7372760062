package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/domain/shared"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order with its lines
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC")
		}).
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByOrderCode finds a purchase order by its unique code
func (r *GormPurchaseOrderRepository) FindByOrderCode(ctx context.Context, orderCode string) (*procurement.PurchaseOrder, error) {
	var order procurement.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_number ASC")
		}).
		Where("order_code = ?", orderCode).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).Preload("Lines"),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds purchase orders in a given status
func (r *GormPurchaseOrderRepository) FindByStatus(ctx context.Context, status procurement.PurchaseOrderStatus, filter shared.Filter) ([]procurement.PurchaseOrder, error) {
	var orders []procurement.PurchaseOrder
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}).
			Preload("Lines").
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsByOrderCode checks order-code uniqueness
func (r *GormPurchaseOrderRepository) ExistsByOrderCode(ctx context.Context, orderCode string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("order_code = ?", orderCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase order and its lines. Lines are
// replaced wholesale so removed lines do not linger.
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, order *procurement.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(order).Error; err != nil {
			if isDuplicateKey(err) {
				return shared.NewDuplicateKeyError("purchase order", order.OrderCode)
			}
			return err
		}

		if err := tx.Where("order_id = ?", order.ID).
			Delete(&procurement.PurchaseOrderLine{}).Error; err != nil {
			return err
		}
		if len(order.Lines) == 0 {
			return nil
		}
		return tx.Create(&order.Lines).Error
	})
}

// Delete removes a draft order and its lines
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&procurement.PurchaseOrderLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&procurement.PurchaseOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts purchase orders matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&procurement.PurchaseOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateOrderCode generates the next order code in the form
// PO-<year>-<seq>, where the sequence restarts each calendar year.
func (r *GormPurchaseOrderRepository) GenerateOrderCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("PO-%d-", time.Now().UTC().Year())

	var lastCode string
	err := r.db.WithContext(ctx).
		Model(&procurement.PurchaseOrder{}).
		Where("order_code LIKE ?", prefix+"%").
		Order("order_code DESC").
		Limit(1).
		Pluck("order_code", &lastCode).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if lastCode != "" {
		parts := strings.Split(lastCode, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	for i := 0; i < 100; i++ {
		code := fmt.Sprintf("%s%04d", prefix, nextNum)
		exists, err := r.ExistsByOrderCode(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
		nextNum++
	}
	return "", fmt.Errorf("could not generate a unique order code after 100 attempts")
}

func (r *GormPurchaseOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PurchaseOrderSortFields, "order_date")
	orderDir := filter.OrderDir
	if filter.OrderBy == "" && orderDir == "" {
		orderDir = "desc"
	}
	return query.Order(orderBy + " " + ValidateSortOrder(orderDir))
}

func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("order_code ILIKE ? OR supplier_name ILIKE ?",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		}
	}

	return query
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ procurement.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
