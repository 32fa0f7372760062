package inventory

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/shared"
)

// InventoryBatch represents one received lot of one product. Quantity only
// ever decreases through sale deduction or adjustment; a batch is never
// deleted, only deactivated or left at zero.
type InventoryBatch struct {
	shared.BaseEntity
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_batch_product_number,priority:1"`
	BatchNumber    string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_batch_product_number,priority:2"`
	QuantityOnHand int             `gorm:"not null"`
	CostPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SellingPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ReceivedDate   time.Time       `gorm:"type:date;not null"`
	ExpiryDate     time.Time       `gorm:"type:date;not null"`
	Active         bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (InventoryBatch) TableName() string {
	return "inventory_batches"
}

// NormalizeDate truncates a timestamp to its calendar date in UTC.
// All received/expiry date comparisons operate on normalized dates.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewInventoryBatch creates a new inventory batch
func NewInventoryBatch(productID uuid.UUID, batchNumber string, quantity int, costPrice, sellingPrice decimal.Decimal, receivedDate, expiryDate time.Time) (*InventoryBatch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("productId", "Product ID cannot be empty")
	}
	if strings.TrimSpace(batchNumber) == "" {
		return nil, shared.NewValidationError("batchNumber", "Batch number cannot be empty")
	}
	if len(batchNumber) > 64 {
		return nil, shared.NewValidationError("batchNumber", "Batch number cannot exceed 64 characters")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "Quantity must be positive")
	}
	if !costPrice.IsPositive() {
		return nil, shared.NewValidationError("costPrice", "Cost price must be positive")
	}
	if !sellingPrice.IsPositive() {
		return nil, shared.NewValidationError("sellingPrice", "Selling price must be positive")
	}

	received := NormalizeDate(receivedDate)
	expiry := NormalizeDate(expiryDate)
	if expiry.Before(received) {
		return nil, shared.NewValidationError("expiryDate", "Expiry date must be on or after received date")
	}

	return &InventoryBatch{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		BatchNumber:    batchNumber,
		QuantityOnHand: quantity,
		CostPrice:      costPrice,
		SellingPrice:   sellingPrice,
		ReceivedDate:   received,
		ExpiryDate:     expiry,
		Active:         true,
	}, nil
}

// Deduct reduces the on-hand quantity and returns the new balance.
// The balance never goes negative.
func (b *InventoryBatch) Deduct(quantity int) (int, error) {
	if quantity <= 0 {
		return b.QuantityOnHand, shared.NewValidationError("quantity", "Deduct quantity must be positive")
	}
	if quantity > b.QuantityOnHand {
		return b.QuantityOnHand, shared.NewInsufficientStockError(quantity, b.QuantityOnHand)
	}

	b.QuantityOnHand -= quantity
	b.UpdatedAt = time.Now()
	return b.QuantityOnHand, nil
}

// AddQuantity increases the on-hand quantity (additional receipt into the same lot)
func (b *InventoryBatch) AddQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewValidationError("quantity", "Quantity must be positive")
	}
	b.QuantityOnHand += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// ApplyAdjustment applies a signed quantity correction. The resulting
// balance must stay non-negative.
func (b *InventoryBatch) ApplyAdjustment(change int) error {
	if change == 0 {
		return shared.NewValidationError("quantityChange", "Quantity change cannot be zero")
	}
	next := b.QuantityOnHand + change
	if next < 0 {
		return shared.NewInsufficientStockError(-change, b.QuantityOnHand)
	}
	b.QuantityOnHand = next
	b.UpdatedAt = time.Now()
	return nil
}

// IsExpired returns true if the batch expired strictly before asOf
func (b *InventoryBatch) IsExpired(asOf time.Time) bool {
	return b.ExpiryDate.Before(NormalizeDate(asOf))
}

// IsNearExpiry returns true if the batch is not expired and expires within
// windowDays of asOf (inclusive)
func (b *InventoryBatch) IsNearExpiry(asOf time.Time, windowDays int) bool {
	if windowDays <= 0 || b.IsExpired(asOf) {
		return false
	}
	threshold := NormalizeDate(asOf).AddDate(0, 0, windowDays)
	return !b.ExpiryDate.After(threshold)
}

// DaysUntilExpiry returns the number of whole days until the batch expires
func (b *InventoryBatch) DaysUntilExpiry(asOf time.Time) int {
	return int(b.ExpiryDate.Sub(NormalizeDate(asOf)).Hours() / 24)
}

// HasStock returns true if the batch has positive on-hand quantity
func (b *InventoryBatch) HasStock() bool {
	return b.QuantityOnHand > 0
}

// IsAvailable returns true if the batch can be sold from as of the given date
func (b *InventoryBatch) IsAvailable(asOf time.Time) bool {
	return b.Active && b.HasStock() && !b.IsExpired(asOf)
}

// Deactivate excludes the batch from availability without deleting it
func (b *InventoryBatch) Deactivate() {
	if !b.Active {
		return
	}
	b.Active = false
	b.UpdatedAt = time.Now()
}
