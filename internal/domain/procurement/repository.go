package procurement

import (
	"context"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)

	// FindByOrderCode finds a purchase order by its unique code
	FindByOrderCode(ctx context.Context, orderCode string) (*PurchaseOrder, error)

	// FindAll finds purchase orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByStatus finds purchase orders in a given status
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)

	// ExistsByOrderCode checks order-code uniqueness
	ExistsByOrderCode(ctx context.Context, orderCode string) (bool, error)

	// Save creates or updates a purchase order and its lines
	Save(ctx context.Context, order *PurchaseOrder) error

	// Delete removes a draft order entirely
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts purchase orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// GenerateOrderCode generates the next unique order code
	GenerateOrderCode(ctx context.Context) (string, error)
}
