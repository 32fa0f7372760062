package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// SaleTransactionRepository persists committed sales. Sales are
// append-only; there is no update or delete.
type SaleTransactionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SaleTransaction, error)
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*SaleTransaction, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*SaleTransaction, error)
	FindBySoldAtRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*SaleTransaction, error)
	ExistsByReceiptNumber(ctx context.Context, receiptNumber string) (bool, error)
	Save(ctx context.Context, sale *SaleTransaction) error
	Count(ctx context.Context) (int64, error)
}
