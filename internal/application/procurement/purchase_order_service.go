package procurement

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/partner"
	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/domain/shared"
)

// PurchaseOrderService drives the purchase order lifecycle from draft
// to receipt, including the batch materialization on receive.
type PurchaseOrderService struct {
	txScope        TransactionScope
	orderRepo      procurement.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	productRepo    catalog.ProductRepository
	policy         procurement.ReceivingPolicy
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(
	txScope TransactionScope,
	orderRepo procurement.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	policy procurement.ReceivingPolicy,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		txScope:      txScope,
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		policy:       policy,
		now:          time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the service clock, for tests
func (s *PurchaseOrderService) SetClock(now func() time.Time) {
	s.now = now
}

// Create opens a new draft order with an optional initial set of lines
func (s *PurchaseOrderService) Create(ctx context.Context, req CreatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.Active {
		return nil, shared.NewValidationError("supplier_id", "Supplier is not active")
	}

	orderCode, err := s.orderRepo.GenerateOrderCode(ctx)
	if err != nil {
		return nil, err
	}

	orderDate := s.now()
	if req.OrderDate != nil {
		orderDate = *req.OrderDate
	}

	order, err := procurement.NewPurchaseOrder(orderCode, supplier.ID, supplier.Name, orderDate)
	if err != nil {
		return nil, err
	}

	for _, line := range req.Lines {
		product, err := s.activeProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := order.AddLine(product.ID, product.Name, line.Quantity, line.UnitCost); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	return ToPurchaseOrderResponse(order), nil
}

// UpdateLines replaces a draft order's lines
func (s *PurchaseOrderService) UpdateLines(ctx context.Context, id uuid.UUID, req UpdatePurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	inputs := make([]procurement.LineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		product, err := s.activeProduct(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, procurement.LineInput{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
		})
	}

	if err := order.ReplaceLines(inputs); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(order), nil
}

// Delete removes a draft order entirely
func (s *PurchaseOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !order.CanDelete() {
		return shared.NewInvalidStateTransitionError(order.Status.String(), "DELETED")
	}
	return s.orderRepo.Delete(ctx, id)
}

// Send transitions a draft order to ORDERED
func (s *PurchaseOrderService) Send(ctx context.Context, id uuid.UUID, req SendPurchaseOrderRequest) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Send(req.ExpectedDate); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	return ToPurchaseOrderResponse(order), nil
}

// Receive marks an ORDERED order received and materializes each line
// into a new ledger batch. The status change and all batch inserts
// commit atomically; a failure on any batch rolls back the receive.
func (s *PurchaseOrderService) Receive(ctx context.Context, id uuid.UUID, req ReceivePurchaseOrderRequest) (*ReceiveResult, error) {
	receivedDate := inventory.NormalizeDate(s.now())
	if req.ReceivedDate != nil {
		receivedDate = inventory.NormalizeDate(*req.ReceivedDate)
	}

	var (
		order   *procurement.PurchaseOrder
		batches []*inventory.InventoryBatch
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := order.MarkReceived(receivedDate); err != nil {
			return err
		}

		planned, err := s.policy.PlanBatches(order, receivedDate)
		if err != nil {
			return err
		}

		batches = make([]*inventory.InventoryBatch, 0, len(planned))
		for _, plan := range planned {
			batch, err := inventory.NewInventoryBatch(plan.ProductID, plan.BatchNumber, plan.Quantity,
				plan.UnitCost, plan.SellingPrice, plan.ReceivedDate, plan.ExpiryDate)
			if err != nil {
				return err
			}
			if err := repos.BatchRepo().Create(ctx, batch); err != nil {
				return err
			}
			batches = append(batches, batch)
		}

		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	received := make([]ReceivedBatch, 0, len(batches))
	for _, batch := range batches {
		s.publish(ctx, inventory.NewBatchReceivedEvent(batch))
		received = append(received, ReceivedBatch{
			BatchID:      batch.ID,
			ProductID:    batch.ProductID,
			BatchNumber:  batch.BatchNumber,
			Quantity:     batch.QuantityOnHand,
			SellingPrice: batch.SellingPrice,
			ExpiryDate:   batch.ExpiryDate,
		})
	}

	return &ReceiveResult{
		Order:   ToPurchaseOrderResponse(order),
		Batches: received,
	}, nil
}

// Cancel cancels a DRAFT or ORDERED order
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)
	return ToPurchaseOrderResponse(order), nil
}

// GetByID fetches one order with its lines
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPurchaseOrderResponse(order), nil
}

// List fetches a page of orders, optionally restricted to one status
func (s *PurchaseOrderService) List(ctx context.Context, filter shared.Filter, status string) (*shared.Paginated[*PurchaseOrderResponse], error) {
	var (
		orders []procurement.PurchaseOrder
		err    error
	)
	if status != "" {
		orderStatus := procurement.PurchaseOrderStatus(status)
		if !orderStatus.IsValid() {
			return nil, shared.NewValidationError("status", "Unknown order status: "+status)
		}
		orders, err = s.orderRepo.FindByStatus(ctx, orderStatus, filter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, ToPurchaseOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *PurchaseOrderService) activeProduct(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewValidationError("product_id", "Product is not active: "+product.SKU)
	}
	return product, nil
}

func (s *PurchaseOrderService) publishEvents(ctx context.Context, order *procurement.PurchaseOrder) {
	events := order.GetDomainEvents()
	order.ClearDomainEvents()
	s.publish(ctx, events...)
}

func (s *PurchaseOrderService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Event delivery failures are logged by the bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
