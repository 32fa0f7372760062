package sales

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/shared"
)

// PaymentMethod identifies how a sale was settled at the counter.
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodMobile   PaymentMethod = "MOBILE"
	PaymentMethodVoucher  PaymentMethod = "VOUCHER"
	PaymentMethodOnCredit PaymentMethod = "ON_CREDIT"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodMobile,
		PaymentMethodVoucher, PaymentMethodOnCredit:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// SaleTransactionLine records how many units were drawn from one batch
// and at what price. Lines never change after the sale is committed.
type SaleTransactionLine struct {
	shared.BaseEntity
	SaleID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	LineNumber   int             `gorm:"not null" json:"line_number"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName  string          `gorm:"size:200;not null" json:"product_name"`
	BatchID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"batch_id"`
	BatchNumber  string          `gorm:"size:100;not null" json:"batch_number"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"line_total"`
}

func (SaleTransactionLine) TableName() string {
	return "sale_transaction_lines"
}

// SaleTransaction is the append-only record of a completed point-of-sale
// checkout. It is created once its stock has been deducted; there is no
// draft state and no mutation after creation.
type SaleTransaction struct {
	shared.BaseAggregateRoot
	ReceiptNumber   string                `gorm:"size:50;uniqueIndex;not null" json:"receipt_number"`
	SoldAt          time.Time             `gorm:"not null;index" json:"sold_at"`
	CashierID       uuid.UUID             `gorm:"type:uuid" json:"cashier_id"`
	CustomerName    string                `gorm:"size:200" json:"customer_name"`
	CustomerEmail   string                `gorm:"size:255" json:"customer_email,omitempty"`
	PrescriptionRef string                `gorm:"size:500" json:"prescription_ref,omitempty"`
	PaymentMethod   PaymentMethod         `gorm:"size:20;not null" json:"payment_method"`
	Discount        decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0" json:"discount"`
	TotalAmount     decimal.Decimal       `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	Lines           []SaleTransactionLine `gorm:"foreignKey:SaleID" json:"lines"`
}

func (SaleTransaction) TableName() string {
	return "sale_transactions"
}

// LineDraw is the resolved outcome of allocating one requested product
// quantity against a concrete batch, carried into a transaction line.
type LineDraw struct {
	ProductID   uuid.UUID
	ProductName string
	BatchID     uuid.UUID
	BatchNumber string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// SaleDetails carries the checkout context recorded on a sale. Every
// field is optional; an unset cashier is stored as the nil UUID.
type SaleDetails struct {
	CashierID       uuid.UUID
	CustomerName    string
	CustomerEmail   string
	PrescriptionRef string
}

// NewSaleTransaction assembles a committed sale from resolved batch draws.
// The total is the sum of line totals minus the discount, floored at zero.
func NewSaleTransaction(receiptNumber string, soldAt time.Time, details SaleDetails, method PaymentMethod, discount decimal.Decimal, draws []LineDraw) (*SaleTransaction, error) {
	receiptNumber = strings.TrimSpace(receiptNumber)
	if receiptNumber == "" {
		return nil, shared.NewValidationError("receipt_number", "Receipt number cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("payment_method", "Invalid payment method: "+method.String())
	}
	if discount.IsNegative() {
		return nil, shared.NewValidationError("discount", "Discount cannot be negative")
	}
	email := strings.TrimSpace(details.CustomerEmail)
	if email != "" && !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("customer_email", "Invalid customer email: "+email)
	}
	if len(draws) == 0 {
		return nil, shared.NewValidationError("lines", "A sale requires at least one line")
	}

	sale := &SaleTransaction{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ReceiptNumber:     receiptNumber,
		SoldAt:            soldAt,
		CashierID:         details.CashierID,
		CustomerName:      strings.TrimSpace(details.CustomerName),
		CustomerEmail:     email,
		PrescriptionRef:   strings.TrimSpace(details.PrescriptionRef),
		PaymentMethod:     method,
		Discount:          discount,
	}

	for i, draw := range draws {
		if draw.Quantity <= 0 {
			return nil, shared.NewValidationError("quantity", "Line quantity must be positive")
		}
		if draw.UnitPrice.IsNegative() {
			return nil, shared.NewValidationError("unit_price", "Unit price cannot be negative")
		}
		line := SaleTransactionLine{
			BaseEntity:  shared.NewBaseEntity(),
			SaleID:      sale.ID,
			LineNumber:  i + 1,
			ProductID:   draw.ProductID,
			ProductName: draw.ProductName,
			BatchID:     draw.BatchID,
			BatchNumber: draw.BatchNumber,
			Quantity:    draw.Quantity,
			UnitPrice:   draw.UnitPrice,
			LineTotal:   draw.UnitPrice.Mul(decimal.NewFromInt(int64(draw.Quantity))),
		}
		sale.Lines = append(sale.Lines, line)
	}

	sale.TotalAmount = CalculateTotalAmount(sale.Lines, discount)
	sale.AddDomainEvent(NewSaleCompletedEvent(sale))
	return sale, nil
}

// CalculateTotalAmount sums the line totals and subtracts the discount.
// The result never goes below zero.
func CalculateTotalAmount(lines []SaleTransactionLine, discount decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		total = total.Add(lines[i].LineTotal)
	}
	total = total.Sub(discount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// TotalQuantity is the number of units sold across all lines.
func (s *SaleTransaction) TotalQuantity() int {
	total := 0
	for i := range s.Lines {
		total += s.Lines[i].Quantity
	}
	return total
}
