package partner

import (
	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/partner"
)

// CreateSupplierRequest represents a request to register a new supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=255"`
	ContactName string `json:"contact_name" binding:"max=128"`
	Phone       string `json:"phone" binding:"max=32"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	Address     string `json:"address" binding:"max=500"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=128"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Address     string    `json:"address"`
	Active      bool      `json:"active"`
	Version     int       `json:"version"`
}

// ToSupplierResponse converts a supplier to its API representation
func ToSupplierResponse(s *partner.Supplier) *SupplierResponse {
	return &SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactName: s.Contact.ContactName,
		Phone:       s.Contact.Phone,
		Email:       s.Contact.Email,
		Address:     s.Contact.Address,
		Active:      s.Active,
		Version:     s.Version,
	}
}
