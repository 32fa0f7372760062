package procurement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ORDERED"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "RECEIVED"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusOrdered,
		PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusOrdered || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusOrdered:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived, PurchaseOrderStatusCancelled:
		return false // terminal states
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s PurchaseOrderStatus) IsTerminal() bool {
	return s == PurchaseOrderStatusReceived || s == PurchaseOrderStatusCancelled
}

// PurchaseOrderLine represents a line item in a purchase order.
// Line numbers are 1-based, assigned on insertion and immutable afterwards.
type PurchaseOrderLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(255);not null"`
	LineNumber  int             `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderLine) TableName() string {
	return "purchase_order_lines"
}

// LineTotal returns quantity times unit cost for this line
func (l *PurchaseOrderLine) LineTotal() decimal.Decimal {
	return l.UnitCost.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func newPurchaseOrderLine(orderID, productID uuid.UUID, productName string, lineNumber, quantity int, unitCost decimal.Decimal) (*PurchaseOrderLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("productId", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewValidationError("quantity", "Quantity must be positive")
	}
	if !unitCost.IsPositive() {
		return nil, shared.NewValidationError("unitCost", "Unit cost must be positive")
	}

	now := time.Now()
	return &PurchaseOrderLine{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		LineNumber:  lineNumber,
		Quantity:    quantity,
		UnitCost:    unitCost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// PurchaseOrder is the aggregate root for the procurement lifecycle.
// Lines are only mutable in DRAFT; from ORDERED on, quantities and costs
// are frozen for audit.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	OrderCode    string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_purchase_order_code"`
	SupplierID   uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName string              `gorm:"type:varchar(255);not null"`
	Status       PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	OrderDate    time.Time           `gorm:"type:date;not null"`
	ExpectedDate *time.Time          `gorm:"type:date"`
	Lines        []PurchaseOrderLine `gorm:"foreignKey:OrderID;references:ID"`
	ReceivedAt   *time.Time
	CancelledAt  *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new purchase order in DRAFT status
func NewPurchaseOrder(orderCode string, supplierID uuid.UUID, supplierName string, orderDate time.Time) (*PurchaseOrder, error) {
	if strings.TrimSpace(orderCode) == "" {
		return nil, shared.NewValidationError("orderCode", "Order code cannot be empty")
	}
	if len(orderCode) > 50 {
		return nil, shared.NewValidationError("orderCode", "Order code cannot exceed 50 characters")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("supplierId", "Supplier ID cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderCode:         orderCode,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Status:            PurchaseOrderStatusDraft,
		OrderDate:         orderDate,
		Lines:             make([]PurchaseOrderLine, 0),
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// CanUpdate returns true if line items may still be mutated
func (o *PurchaseOrder) CanUpdate() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// CanDelete returns true if the order may be discarded entirely
func (o *PurchaseOrder) CanDelete() bool {
	return o.Status == PurchaseOrderStatusDraft
}

// AddLine appends a new line item with the next 1-based line number
func (o *PurchaseOrder) AddLine(productID uuid.UUID, productName string, quantity int, unitCost decimal.Decimal) (*PurchaseOrderLine, error) {
	if !o.CanUpdate() {
		return nil, shared.NewInvalidStateTransitionError(o.Status.String(), "line update")
	}

	line, err := newPurchaseOrderLine(o.ID, productID, productName, len(o.Lines)+1, quantity, unitCost)
	if err != nil {
		return nil, err
	}

	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return line, nil
}

// LineInput carries the fields needed to build one order line
type LineInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitCost    decimal.Decimal
}

// ReplaceLines swaps the whole line set, renumbering from 1 in input order.
// Only allowed in DRAFT.
func (o *PurchaseOrder) ReplaceLines(inputs []LineInput) error {
	if !o.CanUpdate() {
		return shared.NewInvalidStateTransitionError(o.Status.String(), "line update")
	}
	if len(inputs) == 0 {
		return shared.NewValidationError("lines", "Order must have at least one line")
	}

	lines := make([]PurchaseOrderLine, 0, len(inputs))
	for idx, in := range inputs {
		line, err := newPurchaseOrderLine(o.ID, in.ProductID, in.ProductName, idx+1, in.Quantity, in.UnitCost)
		if err != nil {
			return err
		}
		lines = append(lines, *line)
	}

	o.Lines = lines
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

// RemoveLine removes one line and renumbers the remainder. Only allowed in DRAFT.
func (o *PurchaseOrder) RemoveLine(lineID uuid.UUID) error {
	if !o.CanUpdate() {
		return shared.NewInvalidStateTransitionError(o.Status.String(), "line update")
	}

	for idx := range o.Lines {
		if o.Lines[idx].ID == lineID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			for i := range o.Lines {
				o.Lines[i].LineNumber = i + 1
			}
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}

	return shared.NewNotFoundError("Order line")
}

// Send transitions the order from DRAFT to ORDERED and records the
// expected delivery date. The order must have at least one line.
func (o *PurchaseOrder) Send(expectedDate *time.Time) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusOrdered) {
		return shared.NewInvalidStateTransitionError(o.Status.String(), PurchaseOrderStatusOrdered.String())
	}
	if len(o.Lines) == 0 {
		return shared.NewValidationError("lines", "Cannot send an order without lines")
	}

	o.Status = PurchaseOrderStatusOrdered
	o.ExpectedDate = expectedDate
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSentEvent(o))

	return nil
}

// MarkReceived transitions the order from ORDERED to RECEIVED. Batch
// materialization into the ledger is driven by the application layer
// through a ReceivingPolicy; this method only records the transition.
func (o *PurchaseOrder) MarkReceived(receivedAt time.Time) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusReceived) {
		return shared.NewInvalidStateTransitionError(o.Status.String(), PurchaseOrderStatusReceived.String())
	}

	o.Status = PurchaseOrderStatusReceived
	o.ReceivedAt = &receivedAt
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderReceivedEvent(o))

	return nil
}

// Cancel transitions the order to CANCELLED from DRAFT or ORDERED
func (o *PurchaseOrder) Cancel() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewInvalidStateTransitionError(o.Status.String(), PurchaseOrderStatusCancelled.String())
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderCancelledEvent(o))

	return nil
}

// TotalCost sums quantity times unit cost over all lines
func (o *PurchaseOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Lines {
		total = total.Add(o.Lines[i].LineTotal())
	}
	return total
}

// TotalQuantity sums ordered quantity over all lines
func (o *PurchaseOrder) TotalQuantity() int {
	total := 0
	for i := range o.Lines {
		total += o.Lines[i].Quantity
	}
	return total
}
