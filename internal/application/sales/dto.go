package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/sales"
)

// SaleLineRequest represents one requested product quantity. BatchID
// optionally pins the line to a specific batch instead of letting the
// allocator pick by expiry.
type SaleLineRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	Quantity  int        `json:"quantity" binding:"required,min=1"`
	BatchID   *uuid.UUID `json:"batch_id"`
}

// CreateSaleRequest represents a point-of-sale checkout
type CreateSaleRequest struct {
	Lines           []SaleLineRequest `json:"lines" binding:"required,min=1,dive"`
	CustomerName    string            `json:"customer_name" binding:"max=200"`
	CustomerEmail   string            `json:"customer_email" binding:"omitempty,email,max=255"`
	PrescriptionRef string            `json:"prescription_ref" binding:"max=500"`
	PaymentMethod   string            `json:"payment_method" binding:"required,oneof=CASH CARD MOBILE VOUCHER ON_CREDIT"`
	Discount        decimal.Decimal   `json:"discount"`
	ReceiptNumber   string            `json:"receipt_number" binding:"max=50"`

	// CashierID is taken from the authenticated operator, never the body.
	CashierID uuid.UUID `json:"-"`
}

// SaleLineResponse represents a committed sale line in API responses
type SaleLineResponse struct {
	ID          uuid.UUID       `json:"id"`
	LineNumber  int             `json:"line_number"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	BatchID     uuid.UUID       `json:"batch_id"`
	BatchNumber string          `json:"batch_number"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// SaleResponse represents a committed sale in API responses
type SaleResponse struct {
	ID              uuid.UUID          `json:"id"`
	ReceiptNumber   string             `json:"receipt_number"`
	SoldAt          time.Time          `json:"sold_at"`
	CashierID       uuid.UUID          `json:"cashier_id"`
	CustomerName    string             `json:"customer_name,omitempty"`
	CustomerEmail   string             `json:"customer_email,omitempty"`
	PrescriptionRef string             `json:"prescription_ref,omitempty"`
	PaymentMethod   string             `json:"payment_method"`
	Discount        decimal.Decimal    `json:"discount"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	TotalQuantity   int                `json:"total_quantity"`
	Lines           []SaleLineResponse `json:"lines"`
}

// ToSaleResponse converts a sale to its API representation
func ToSaleResponse(s *sales.SaleTransaction) *SaleResponse {
	lines := make([]SaleLineResponse, 0, len(s.Lines))
	for i := range s.Lines {
		line := &s.Lines[i]
		lines = append(lines, SaleLineResponse{
			ID:          line.ID,
			LineNumber:  line.LineNumber,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			BatchID:     line.BatchID,
			BatchNumber: line.BatchNumber,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
		})
	}
	return &SaleResponse{
		ID:              s.ID,
		ReceiptNumber:   s.ReceiptNumber,
		SoldAt:          s.SoldAt,
		CashierID:       s.CashierID,
		CustomerName:    s.CustomerName,
		CustomerEmail:   s.CustomerEmail,
		PrescriptionRef: s.PrescriptionRef,
		PaymentMethod:   s.PaymentMethod.String(),
		Discount:        s.Discount,
		TotalAmount:     s.TotalAmount,
		TotalQuantity:   s.TotalQuantity(),
		Lines:           lines,
	}
}

// SellableProductResponse represents a product as shown on the
// point-of-sale screen: available stock across batches and the price
// the next sale would charge.
type SellableProductResponse struct {
	ProductID         uuid.UUID       `json:"product_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	DosageForm        string          `json:"dosage_form"`
	DosageStrength    string          `json:"dosage_strength"`
	AvailableQuantity int             `json:"available_quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	NextExpiryDate    time.Time       `json:"next_expiry_date"`
}
