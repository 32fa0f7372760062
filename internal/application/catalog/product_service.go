package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/shared"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.SKU, req.Name, req.ActiveIngredient, req.DosageForm, req.DosageStrength, catalog.ProductCategory(req.Category))
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDuplicateKeyError("Product", product.SKU)
	}

	if req.ReorderLevel != nil || req.MinStock != nil || req.ExpiryAlertDays != nil {
		if err := product.ConfigureAlerts(req.ReorderLevel, req.MinStock, req.ExpiryAlertDays); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// Update changes a product's details
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sku := product.SKU
	if req.SKU != nil {
		sku = *req.SKU
	}
	name := product.Name
	if req.Name != nil {
		name = *req.Name
	}
	ingredient := product.ActiveIngredient
	if req.ActiveIngredient != nil {
		ingredient = *req.ActiveIngredient
	}
	form := product.DosageForm
	if req.DosageForm != nil {
		form = *req.DosageForm
	}
	strength := product.DosageStrength
	if req.DosageStrength != nil {
		strength = *req.DosageStrength
	}
	category := product.Category
	if req.Category != nil {
		category = catalog.ProductCategory(*req.Category)
	}

	if err := product.UpdateDetails(sku, name, ingredient, form, strength, category); err != nil {
		return nil, err
	}

	if product.SKU != sku || req.SKU != nil {
		existing, err := s.productRepo.FindBySKU(ctx, product.SKU)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		if existing != nil && existing.ID != product.ID {
			return nil, shared.NewDuplicateKeyError("Product", product.SKU)
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// ConfigureAlerts sets a product's low-stock and near-expiry thresholds
func (s *ProductService) ConfigureAlerts(ctx context.Context, id uuid.UUID, req ConfigureAlertsRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.ConfigureAlerts(req.ReorderLevel, req.MinStock, req.ExpiryAlertDays); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// Deactivate retires a product from sale and purchasing
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Deactivate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// Activate puts a product back on sale
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Activate()

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, product)
	return ToProductResponse(product), nil
}

// GetByID fetches one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetBySKU fetches one product by its SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// List fetches a page of products
func (s *ProductService) List(ctx context.Context, filter shared.Filter, activeOnly bool) (*shared.Paginated[*ProductResponse], error) {
	var (
		products []catalog.Product
		err      error
	)
	if activeOnly {
		products, err = s.productRepo.FindActive(ctx, filter)
	} else {
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *ProductService) publishEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		product.ClearDomainEvents()
		return
	}
	events := product.GetDomainEvents()
	product.ClearDomainEvents()
	if len(events) == 0 {
		return
	}
	// Event delivery failures are logged by the bus, not propagated
	_ = s.eventPublisher.Publish(ctx, events...)
}
