package inventory

import (
	"strings"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/shared"
)

// AdjustmentType captures the reason class for a manual stock correction
type AdjustmentType string

const (
	AdjustmentTypeCountVariance  AdjustmentType = "COUNT_VARIANCE"
	AdjustmentTypeDamagedGoods   AdjustmentType = "DAMAGED_GOODS"
	AdjustmentTypeExpiredRemoval AdjustmentType = "EXPIRED_REMOVAL"
	AdjustmentTypeInitialStock   AdjustmentType = "INITIAL_STOCK"
	AdjustmentTypeOther          AdjustmentType = "OTHER"
)

// IsValid checks if the adjustment type is valid
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentTypeCountVariance, AdjustmentTypeDamagedGoods,
		AdjustmentTypeExpiredRemoval, AdjustmentTypeInitialStock, AdjustmentTypeOther:
		return true
	}
	return false
}

// String returns the string representation
func (t AdjustmentType) String() string {
	return string(t)
}

// InventoryAdjustment records a manual intervention on a batch quantity.
// Adjustments are append-only; they exist for auditability.
type InventoryAdjustment struct {
	shared.BaseEntity
	BatchID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	PerformedBy    uuid.UUID      `gorm:"type:uuid;not null"`
	Type           AdjustmentType `gorm:"type:varchar(32);not null"`
	QuantityChange int            `gorm:"not null"`
	Reason         string         `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (InventoryAdjustment) TableName() string {
	return "inventory_adjustments"
}

// NewInventoryAdjustment creates a new inventory adjustment record
func NewInventoryAdjustment(batchID, productID, performedBy uuid.UUID, adjType AdjustmentType, quantityChange int, reason string) (*InventoryAdjustment, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewValidationError("batchId", "Batch ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("productId", "Product ID cannot be empty")
	}
	if performedBy == uuid.Nil {
		return nil, shared.NewValidationError("performedBy", "Performer ID cannot be empty")
	}
	if !adjType.IsValid() {
		return nil, shared.NewValidationError("type", "Unknown adjustment type")
	}
	if quantityChange == 0 {
		return nil, shared.NewValidationError("quantityChange", "Quantity change cannot be zero")
	}
	if len(strings.TrimSpace(reason)) == 0 && adjType == AdjustmentTypeOther {
		return nil, shared.NewValidationError("reason", "Reason is required for OTHER adjustments")
	}

	return &InventoryAdjustment{
		BaseEntity:     shared.NewBaseEntity(),
		BatchID:        batchID,
		ProductID:      productID,
		PerformedBy:    performedBy,
		Type:           adjType,
		QuantityChange: quantityChange,
		Reason:         reason,
	}, nil
}
