package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/partner"
	"github.com/phf/backend/internal/domain/shared"
)

// SupplierService handles supplier-related business operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
	}
}

// Create registers a new supplier
func (s *SupplierService) Create(ctx context.Context, req CreateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := partner.NewSupplier(req.Name, partner.ContactInfo{
		ContactName: req.ContactName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
	})
	if err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Update changes a supplier's details
func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := supplier.Name
	if req.Name != nil {
		name = *req.Name
	}
	contact := supplier.Contact
	if req.ContactName != nil {
		contact.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		contact.Phone = *req.Phone
	}
	if req.Email != nil {
		contact.Email = *req.Email
	}
	if req.Address != nil {
		contact.Address = *req.Address
	}

	if err := supplier.Update(name, contact); err != nil {
		return nil, err
	}

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Deactivate retires a supplier from new purchase orders
func (s *SupplierService) Deactivate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Deactivate()

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// Activate restores a supplier for new purchase orders
func (s *SupplierService) Activate(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Activate()

	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// GetByID fetches one supplier
func (s *SupplierService) GetByID(ctx context.Context, id uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToSupplierResponse(supplier), nil
}

// List fetches a page of suppliers
func (s *SupplierService) List(ctx context.Context, filter shared.Filter, activeOnly bool) (*shared.Paginated[*SupplierResponse], error) {
	var (
		suppliers []partner.Supplier
		err       error
	)
	if activeOnly {
		suppliers, err = s.supplierRepo.FindActive(ctx, filter)
	} else {
		suppliers, err = s.supplierRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.supplierRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, ToSupplierResponse(&suppliers[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}
