package procurement

import (
	"context"

	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/procurement"
)

// TransactionScope provides transactional access to the repositories a
// purchase order receive touches. The order status change and the new
// ledger batches commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the procurement-side
// repositories within a transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the purchase order repository scoped to the current transaction
	OrderRepo() procurement.PurchaseOrderRepository
	// BatchRepo returns the batch repository scoped to the current transaction
	BatchRepo() inventory.BatchRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	orderRepo procurement.PurchaseOrderRepository
	batchRepo inventory.BatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(orderRepo procurement.PurchaseOrderRepository, batchRepo inventory.BatchRepository) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo: orderRepo,
		batchRepo: batchRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the purchase order repository.
func (s *NoOpTransactionScope) OrderRepo() procurement.PurchaseOrderRepository {
	return s.orderRepo
}

// BatchRepo returns the batch repository.
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository {
	return s.batchRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
