package partner

import (
	"strings"
	"time"

	"github.com/phf/backend/internal/domain/shared"
)

// ContactInfo holds contact details for a supplier
type ContactInfo struct {
	ContactName string `gorm:"type:varchar(128)" json:"contact_name"`
	Phone       string `gorm:"type:varchar(32)" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email"`
	Address     string `gorm:"type:varchar(500)" json:"address"`
}

// Supplier represents a supplier that purchase orders are placed with.
// Suppliers are never deleted, only deactivated; historical orders keep
// referencing them by ID.
type Supplier struct {
	shared.BaseAggregateRoot
	Name    string      `gorm:"type:varchar(255);not null;uniqueIndex:idx_supplier_name"`
	Contact ContactInfo `gorm:"embedded;embeddedPrefix:contact_"`
	Active  bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier
func NewSupplier(name string, contact ContactInfo) (*Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("name", "Supplier name cannot be empty")
	}
	if len(name) > 255 {
		return nil, shared.NewValidationError("name", "Supplier name cannot exceed 255 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Contact:           contact,
		Active:            true,
	}, nil
}

// Update updates the supplier details
func (s *Supplier) Update(name string, contact ContactInfo) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("name", "Supplier name cannot be empty")
	}

	s.Name = name
	s.Contact = contact
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Deactivate marks the supplier as inactive. New purchase orders cannot
// be placed with an inactive supplier.
func (s *Supplier) Deactivate() {
	if !s.Active {
		return
	}
	s.Active = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Activate re-enables a deactivated supplier
func (s *Supplier) Activate() {
	if s.Active {
		return
	}
	s.Active = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}
