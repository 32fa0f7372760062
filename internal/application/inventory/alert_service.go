package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/phf/backend/internal/domain/catalog"
	"github.com/phf/backend/internal/domain/inventory"
	"github.com/phf/backend/internal/domain/shared"
)

const (
	// DefaultExpiryWindowDays is the near-expiry window used when a
	// product has no configured window of its own.
	DefaultExpiryWindowDays = 90

	// CriticalExpiryDays marks batches expiring within a week as critical.
	CriticalExpiryDays = 7
)

// Alert severities
const (
	SeverityWarning  = "WARNING"
	SeverityCritical = "CRITICAL"
)

// LowStockAlert reports a product whose sellable total has fallen to or
// under its configured threshold.
type LowStockAlert struct {
	ProductID      uuid.UUID `json:"product_id"`
	SKU            string    `json:"sku"`
	ProductName    string    `json:"product_name"`
	TotalAvailable int       `json:"total_available"`
	Threshold      int       `json:"threshold"`
	Severity       string    `json:"severity"`
}

// NearExpiryAlert reports a batch with sellable stock that expires
// within the product's alert window.
type NearExpiryAlert struct {
	BatchID         uuid.UUID `json:"batch_id"`
	ProductID       uuid.UUID `json:"product_id"`
	BatchNumber     string    `json:"batch_number"`
	QuantityOnHand  int       `json:"quantity_on_hand"`
	ExpiryDate      time.Time `json:"expiry_date"`
	DaysUntilExpiry int       `json:"days_until_expiry"`
	Severity        string    `json:"severity"`
}

// AlertService evaluates stock alerts on demand. Alerts are derived
// from the current ledger state, never stored.
type AlertService struct {
	productRepo   catalog.ProductRepository
	batchRepo     inventory.BatchRepository
	defaultWindow int
	criticalDays  int
	now           func() time.Time
}

// NewAlertService creates a new AlertService
func NewAlertService(productRepo catalog.ProductRepository, batchRepo inventory.BatchRepository) *AlertService {
	return &AlertService{
		productRepo:   productRepo,
		batchRepo:     batchRepo,
		defaultWindow: DefaultExpiryWindowDays,
		criticalDays:  CriticalExpiryDays,
		now:           time.Now,
	}
}

// SetWindows overrides the default near-expiry window and the critical
// cutoff. Non-positive values keep the current setting.
func (s *AlertService) SetWindows(defaultWindowDays, criticalDays int) {
	if defaultWindowDays > 0 {
		s.defaultWindow = defaultWindowDays
	}
	if criticalDays > 0 {
		s.criticalDays = criticalDays
	}
}

// SetClock overrides the service clock, for tests
func (s *AlertService) SetClock(now func() time.Time) {
	s.now = now
}

// EvaluateLowStock returns an alert for every active product with a
// configured threshold whose sellable total is at or under it. A
// product with zero stock and a threshold is always reported.
func (s *AlertService) EvaluateLowStock(ctx context.Context) ([]LowStockAlert, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000
	asOf := s.now()

	alerts := make([]LowStockAlert, 0)
	for {
		products, err := s.productRepo.FindActive(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}

		for i := range products {
			product := &products[i]
			threshold, ok := product.LowStockThreshold()
			if !ok {
				continue
			}
			total, err := s.batchRepo.SumAvailableByProduct(ctx, product.ID, asOf)
			if err != nil {
				return nil, err
			}
			if total <= threshold {
				severity := SeverityWarning
				if total == 0 {
					severity = SeverityCritical
				}
				alerts = append(alerts, LowStockAlert{
					ProductID:      product.ID,
					SKU:            product.SKU,
					ProductName:    product.Name,
					TotalAvailable: total,
					Threshold:      threshold,
					Severity:       severity,
				})
			}
		}

		if len(products) < filter.PageSize {
			break
		}
		filter.Page++
	}
	return alerts, nil
}

// EvaluateNearExpiry returns an alert for every available batch whose
// expiry falls within the product's alert window. Batches already
// expired are excluded; expired stock is handled by removal
// adjustments, not alerts.
func (s *AlertService) EvaluateNearExpiry(ctx context.Context) ([]NearExpiryAlert, error) {
	asOf := s.now()
	windows, err := s.expiryWindows(ctx)
	if err != nil {
		return nil, err
	}

	maxWindow := s.defaultWindow
	for _, w := range windows {
		if w > maxWindow {
			maxWindow = w
		}
	}

	batches, err := s.batchRepo.FindExpiringWithin(ctx, asOf, maxWindow)
	if err != nil {
		return nil, err
	}

	today := inventory.NormalizeDate(asOf)
	alerts := make([]NearExpiryAlert, 0, len(batches))
	for i := range batches {
		batch := &batches[i]
		window, ok := windows[batch.ProductID]
		if !ok {
			window = s.defaultWindow
		}
		if !batch.IsNearExpiry(asOf, window) {
			continue
		}

		days := int(batch.ExpiryDate.Sub(today).Hours() / 24)
		severity := SeverityWarning
		if days <= s.criticalDays {
			severity = SeverityCritical
		}
		alerts = append(alerts, NearExpiryAlert{
			BatchID:         batch.ID,
			ProductID:       batch.ProductID,
			BatchNumber:     batch.BatchNumber,
			QuantityOnHand:  batch.QuantityOnHand,
			ExpiryDate:      batch.ExpiryDate,
			DaysUntilExpiry: days,
			Severity:        severity,
		})
	}
	return alerts, nil
}

// expiryWindows maps each active product to its near-expiry window.
func (s *AlertService) expiryWindows(ctx context.Context) (map[uuid.UUID]int, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 1000

	windows := make(map[uuid.UUID]int)
	for {
		products, err := s.productRepo.FindActive(ctx, filter)
		if err != nil {
			return nil, err
		}
		if len(products) == 0 {
			break
		}
		for i := range products {
			if products[i].ExpiryAlertDays != nil {
				windows[products[i].ID] = *products[i].ExpiryAlertDays
			}
		}
		if len(products) < filter.PageSize {
			break
		}
		filter.Page++
	}
	return windows, nil
}
