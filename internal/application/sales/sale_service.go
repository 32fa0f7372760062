package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/sales"
	"github.com/phf/backend/internal/domain/shared"
)

// ReceiptNumberGenerator issues unique receipt numbers for sales.
type ReceiptNumberGenerator interface {
	// Next returns the next receipt number for the given sale time
	Next(ctx context.Context, soldAt time.Time) (string, error)
}

// SaleService processes point-of-sale checkouts. A sale either commits
// entirely, with every line satisfied and every deduction applied, or
// not at all. When another checkout wins a race for the same stock the
// allocation is retried once against the fresh ledger state before the
// sale is rejected.
type SaleService struct {
	txScope        TransactionScope
	saleRepo       sales.SaleTransactionRepository
	batchRepo      inventory.BatchRepository
	productRepo    catalog.ProductRepository
	receipts       ReceiptNumberGenerator
	eventPublisher shared.EventPublisher
	now            func() time.Time
}

// NewSaleService creates a new SaleService
func NewSaleService(
	txScope TransactionScope,
	saleRepo sales.SaleTransactionRepository,
	batchRepo inventory.BatchRepository,
	productRepo catalog.ProductRepository,
	receipts ReceiptNumberGenerator,
) *SaleService {
	return &SaleService{
		txScope:     txScope,
		saleRepo:    saleRepo,
		batchRepo:   batchRepo,
		productRepo: productRepo,
		receipts:    receipts,
		now:         time.Now,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the service clock, for tests
func (s *SaleService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateSale checks out a sale: every line is allocated against the
// ledger first-expire-first-out, the deductions and the sale record
// commit in one transaction, and the completed sale is returned.
func (s *SaleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	soldAt := s.now()

	receiptNumber := req.ReceiptNumber
	if receiptNumber == "" {
		var err error
		receiptNumber, err = s.receipts.Next(ctx, soldAt)
		if err != nil {
			return nil, err
		}
	}

	exists, err := s.saleRepo.ExistsByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError("SaleTransaction", receiptNumber)
	}

	sale, err := s.attemptSale(ctx, req, receiptNumber, soldAt)
	if err != nil {
		// A losing race surfaces as an insufficient-stock rejection at
		// deduction time. Re-plan once against the fresh ledger state.
		if shared.ErrorCode(err) != shared.CodeInsufficientStock {
			return nil, err
		}
		sale, err = s.attemptSale(ctx, req, receiptNumber, soldAt)
		if err != nil {
			return nil, err
		}
	}

	s.publishSale(ctx, sale)
	return ToSaleResponse(sale), nil
}

// GetByID fetches one committed sale
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// GetByReceiptNumber fetches one committed sale by its receipt number
func (s *SaleService) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		return nil, err
	}
	return ToSaleResponse(sale), nil
}

// List fetches a page of sales, optionally restricted to a time range
func (s *SaleService) List(ctx context.Context, filter shared.Filter, from, to *time.Time) (*shared.Paginated[*SaleResponse], error) {
	var (
		results []*sales.SaleTransaction
		err     error
	)
	if from != nil && to != nil {
		results, err = s.saleRepo.FindBySoldAtRange(ctx, *from, *to, filter)
	} else {
		results, err = s.saleRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.saleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*SaleResponse, 0, len(results))
	for _, sale := range results {
		responses = append(responses, ToSaleResponse(sale))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// attemptSale plans the allocation and commits it atomically. The
// deductions are re-validated inside the transaction through guarded
// updates, so a plan based on stale reads fails instead of oversells.
func (s *SaleService) attemptSale(ctx context.Context, req CreateSaleRequest, receiptNumber string, soldAt time.Time) (*sales.SaleTransaction, error) {
	draws, err := s.allocate(ctx, req, soldAt)
	if err != nil {
		return nil, err
	}

	discount := req.Discount
	if discount.IsZero() {
		discount = decimal.Zero
	}

	details := sales.SaleDetails{
		CashierID:       req.CashierID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		PrescriptionRef: req.PrescriptionRef,
	}
	sale, err := sales.NewSaleTransaction(receiptNumber, soldAt, details,
		sales.PaymentMethod(req.PaymentMethod), discount, draws)
	if err != nil {
		return nil, err
	}

	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		for _, draw := range draws {
			if _, err := repos.BatchRepo().DeductQuantity(ctx, draw.BatchID, draw.Quantity); err != nil {
				return err
			}
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// allocate plans batch draws for every requested line. Allocation is
// all-or-nothing per line: a line that cannot be fully satisfied fails
// the whole sale. Quantities already planned for earlier lines are
// subtracted before each line is planned, so two lines of the same
// product never draw the same units from one batch.
func (s *SaleService) allocate(ctx context.Context, req CreateSaleRequest, asOf time.Time) ([]sales.LineDraw, error) {
	draws := make([]sales.LineDraw, 0, len(req.Lines))
	reserved := make(map[uuid.UUID]int)
	for _, line := range req.Lines {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.Active {
			return nil, shared.NewValidationError("product_id", "Product is not active: "+product.SKU)
		}

		if line.BatchID != nil {
			draw, err := s.allocateFromBatch(ctx, product, line, reserved)
			if err != nil {
				return nil, err
			}
			reserved[draw.BatchID] += draw.Quantity
			draws = append(draws, *draw)
			continue
		}

		batches, err := s.batchRepo.FindAvailableByProduct(ctx, product.ID, asOf)
		if err != nil {
			return nil, err
		}
		remaining := make([]inventory.InventoryBatch, len(batches))
		copy(remaining, batches)
		for i := range remaining {
			remaining[i].QuantityOnHand -= reserved[remaining[i].ID]
		}
		planned, err := inventory.AllocateFEFO(line.Quantity, remaining, asOf)
		if err != nil {
			return nil, err
		}
		for _, p := range planned {
			reserved[p.BatchID] += p.Quantity
			draws = append(draws, sales.LineDraw{
				ProductID:   product.ID,
				ProductName: product.Name,
				BatchID:     p.BatchID,
				BatchNumber: p.BatchNumber,
				Quantity:    p.Quantity,
				UnitPrice:   p.SellingPrice,
			})
		}
	}
	return draws, nil
}

// allocateFromBatch satisfies a line from one operator-chosen batch.
// The pinned batch must cover the full quantity after earlier lines'
// reservations; the allocator never tops a pinned line up from other
// batches.
func (s *SaleService) allocateFromBatch(ctx context.Context, product *catalog.Product, line SaleLineRequest, reserved map[uuid.UUID]int) (*sales.LineDraw, error) {
	batch, err := s.batchRepo.FindByID(ctx, *line.BatchID)
	if err != nil {
		return nil, err
	}
	if batch.ProductID != product.ID {
		return nil, shared.NewValidationError("batch_id", "Batch does not belong to the requested product")
	}
	candidate := *batch
	candidate.QuantityOnHand -= reserved[candidate.ID]

	draw, err := inventory.AllocateFromBatch(line.Quantity, &candidate, s.now())
	if err != nil {
		return nil, err
	}
	return &sales.LineDraw{
		ProductID:   product.ID,
		ProductName: product.Name,
		BatchID:     draw.BatchID,
		BatchNumber: draw.BatchNumber,
		Quantity:    draw.Quantity,
		UnitPrice:   draw.SellingPrice,
	}, nil
}

// publishSale emits the sale's own events plus a deduction event per
// line, then re-checks thresholds for every touched product.
func (s *SaleService) publishSale(ctx context.Context, sale *sales.SaleTransaction) {
	if s.eventPublisher == nil {
		sale.ClearDomainEvents()
		return
	}

	events := sale.GetDomainEvents()
	sale.ClearDomainEvents()
	_ = s.eventPublisher.Publish(ctx, events...)

	touched := make(map[uuid.UUID]struct{})
	for i := range sale.Lines {
		line := &sale.Lines[i]
		remaining := -1
		if batch, err := s.batchRepo.FindByID(ctx, line.BatchID); err == nil {
			remaining = batch.QuantityOnHand
		}
		_ = s.eventPublisher.Publish(ctx, inventory.NewStockDeductedEvent(line.ProductID, line.BatchID, line.Quantity, remaining))
		touched[line.ProductID] = struct{}{}
	}

	asOf := s.now()
	for productID := range touched {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			continue
		}
		threshold, ok := product.LowStockThreshold()
		if !ok {
			continue
		}
		total, err := s.batchRepo.SumAvailableByProduct(ctx, productID, asOf)
		if err != nil {
			continue
		}
		if total <= threshold {
			_ = s.eventPublisher.Publish(ctx, inventory.NewStockBelowThresholdEvent(productID, total, threshold))
		}
	}
}

// SellableProducts lists active products that have sellable stock,
// priced from the batch the next sale would draw first.
func (s *SaleService) SellableProducts(ctx context.Context, filter shared.Filter) ([]*SellableProductResponse, error) {
	asOf := s.now()

	products, err := s.productRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]*SellableProductResponse, 0, len(products))
	for i := range products {
		product := &products[i]
		batches, err := s.batchRepo.FindAvailableByProduct(ctx, product.ID, asOf)
		if err != nil {
			return nil, err
		}
		if len(batches) == 0 {
			continue
		}

		available := 0
		for j := range batches {
			available += batches[j].QuantityOnHand
		}
		results = append(results, &SellableProductResponse{
			ProductID:         product.ID,
			SKU:               product.SKU,
			Name:              product.Name,
			DosageForm:        product.DosageForm,
			DosageStrength:    product.DosageStrength,
			AvailableQuantity: available,
			UnitPrice:         batches[0].SellingPrice,
			NextExpiryDate:    batches[0].ExpiryDate,
		})
	}
	return results, nil
}
