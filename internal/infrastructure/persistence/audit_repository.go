package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phf/backend/internal/domain/audit"
	"github.com/phf/backend/internal/domain/shared"
)

// GormAuditRepository implements EntryRepository using GORM
type GormAuditRepository struct {
	db *gorm.DB
}

// NewGormAuditRepository creates a new GormAuditRepository
func NewGormAuditRepository(db *gorm.DB) *GormAuditRepository {
	return &GormAuditRepository{db: db}
}

// Save inserts an audit entry
func (r *GormAuditRepository) Save(ctx context.Context, entry *audit.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindByResource finds entries recorded against a resource
func (r *GormAuditRepository) FindByResource(ctx context.Context, resourceType string, resourceID uuid.UUID, filter shared.Filter) ([]*audit.Entry, error) {
	var entries []*audit.Entry
	query := r.applyFilter(
		r.db.WithContext(ctx).
			Where("resource_type = ? AND resource_id = ?", resourceType, resourceID),
		filter,
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll finds entries matching the filter
func (r *GormAuditRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*audit.Entry, error) {
	var entries []*audit.Entry
	query := r.applyFilter(r.db.WithContext(ctx).Model(&audit.Entry{}), filter)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts all audit entries
func (r *GormAuditRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&audit.Entry{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "resource_type":
			query = query.Where("resource_type = ?", value)
		}
	}

	return query.Order("occurred_at DESC")
}

// Ensure GormAuditRepository implements EntryRepository
var _ audit.EntryRepository = (*GormAuditRepository)(nil)
