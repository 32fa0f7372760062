package sales

import (
	"context"

	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/sales"
)

// TransactionScope provides transactional access to the repositories a
// sale commit touches. The sale record and its stock deductions commit
// or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the sales-side
// repositories within a transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() sales.SaleTransactionRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	saleRepo  sales.SaleTransactionRepository
	batchRepo inventory.BatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(saleRepo sales.SaleTransactionRepository, batchRepo inventory.BatchRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:  saleRepo,
		batchRepo: batchRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository.
func (s *NoOpTransactionScope) SaleRepo() sales.SaleTransactionRepository {
	return s.saleRepo
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
