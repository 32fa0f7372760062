package persistence

import (
	"context"

	"gorm.io/gorm"

	appinventory "github.com/phf/backend/internal/application/inventory"
	appprocurement "github.com/phf/backend/internal/application/procurement"
	appsales "github.com/phf/backend/internal/application/sales"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/domain/sales"
)

// GormInventoryTransactionScope implements the ledger transaction scope
// using GORM transactions.
type GormInventoryTransactionScope struct {
	db *gorm.DB
}

// NewGormInventoryTransactionScope creates a new GormInventoryTransactionScope
func NewGormInventoryTransactionScope(db *gorm.DB) *GormInventoryTransactionScope {
	return &GormInventoryTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormInventoryTransactionScope) Execute(ctx context.Context, fn func(repos appinventory.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormInventoryRepositories{tx: tx})
	})
}

type gormInventoryRepositories struct {
	tx *gorm.DB
}

func (r *gormInventoryRepositories) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

func (r *gormInventoryRepositories) AdjustmentRepo() inventory.AdjustmentRepository {
	return NewGormAdjustmentRepository(r.tx)
}

// GormProcurementTransactionScope implements the purchase order receive
// transaction scope using GORM transactions.
type GormProcurementTransactionScope struct {
	db *gorm.DB
}

// NewGormProcurementTransactionScope creates a new GormProcurementTransactionScope
func NewGormProcurementTransactionScope(db *gorm.DB) *GormProcurementTransactionScope {
	return &GormProcurementTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormProcurementTransactionScope) Execute(ctx context.Context, fn func(repos appprocurement.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormProcurementRepositories{tx: tx})
	})
}

type gormProcurementRepositories struct {
	tx *gorm.DB
}

func (r *gormProcurementRepositories) OrderRepo() procurement.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *gormProcurementRepositories) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

// GormSalesTransactionScope implements the sale commit transaction scope
// using GORM transactions.
type GormSalesTransactionScope struct {
	db *gorm.DB
}

// NewGormSalesTransactionScope creates a new GormSalesTransactionScope
func NewGormSalesTransactionScope(db *gorm.DB) *GormSalesTransactionScope {
	return &GormSalesTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormSalesTransactionScope) Execute(ctx context.Context, fn func(repos appsales.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSalesRepositories{tx: tx})
	})
}

type gormSalesRepositories struct {
	tx *gorm.DB
}

func (r *gormSalesRepositories) SaleRepo() sales.SaleTransactionRepository {
	return NewGormSaleRepository(r.tx)
}

func (r *gormSalesRepositories) BatchRepo() inventory.BatchRepository {
	return NewGormBatchRepository(r.tx)
}

var _ appinventory.TransactionScope = (*GormInventoryTransactionScope)(nil)
var _ appinventory.TransactionalRepositories = (*gormInventoryRepositories)(nil)
var _ appprocurement.TransactionScope = (*GormProcurementTransactionScope)(nil)
var _ appprocurement.TransactionalRepositories = (*gormProcurementRepositories)(nil)
var _ appsales.TransactionScope = (*GormSalesTransactionScope)(nil)
var _ appsales.TransactionalRepositories = (*gormSalesRepositories)(nil)
