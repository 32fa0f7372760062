package inventory

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/phf/backend/internal/domain/shared"
)

// BatchDraw records how much of a requested quantity is drawn from one batch
type BatchDraw struct {
	BatchID      uuid.UUID
	BatchNumber  string
	Quantity     int
	UnitCost     decimal.Decimal
	SellingPrice decimal.Decimal
	ExpiryDate   time.Time
}

// SortFEFO orders batches first-expire-first-out: ascending expiry date,
// then ascending received date, then creation time as a stable tie-break.
func SortFEFO(batches []InventoryBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		if !batches[i].ExpiryDate.Equal(batches[j].ExpiryDate) {
			return batches[i].ExpiryDate.Before(batches[j].ExpiryDate)
		}
		if !batches[i].ReceivedDate.Equal(batches[j].ReceivedDate) {
			return batches[i].ReceivedDate.Before(batches[j].ReceivedDate)
		}
		return batches[i].CreatedAt.Before(batches[j].CreatedAt)
	})
}

// FilterAvailable returns the batches that can be sold from as of the given date
func FilterAvailable(batches []InventoryBatch, asOf time.Time) []InventoryBatch {
	available := make([]InventoryBatch, 0, len(batches))
	for _, b := range batches {
		if b.IsAvailable(asOf) {
			available = append(available, b)
		}
	}
	return available
}

// TotalAvailable sums on-hand quantity over active, non-expired batches
func TotalAvailable(batches []InventoryBatch, asOf time.Time) int {
	total := 0
	for _, b := range batches {
		if b.IsAvailable(asOf) {
			total += b.QuantityOnHand
		}
	}
	return total
}

// AllocateFEFO plans how to satisfy a requested quantity from the given
// batches in FEFO order. Allocation is all-or-nothing: if the available
// stock cannot cover the request, no draws are returned and the caller
// must not deduct anything.
func AllocateFEFO(requested int, batches []InventoryBatch, asOf time.Time) ([]BatchDraw, error) {
	if requested <= 0 {
		return nil, shared.NewValidationError("quantity", "Requested quantity must be positive")
	}

	available := FilterAvailable(batches, asOf)
	total := 0
	for _, b := range available {
		total += b.QuantityOnHand
	}
	if total < requested {
		return nil, shared.NewInsufficientStockError(requested, total)
	}

	SortFEFO(available)

	draws := make([]BatchDraw, 0, len(available))
	remaining := requested
	for _, b := range available {
		if remaining == 0 {
			break
		}
		take := remaining
		if take > b.QuantityOnHand {
			take = b.QuantityOnHand
		}
		draws = append(draws, BatchDraw{
			BatchID:      b.ID,
			BatchNumber:  b.BatchNumber,
			Quantity:     take,
			UnitCost:     b.CostPrice,
			SellingPrice: b.SellingPrice,
			ExpiryDate:   b.ExpiryDate,
		})
		remaining -= take
	}

	return draws, nil
}

// AllocateFromBatch plans an allocation against one explicitly chosen batch,
// bypassing FEFO ordering. The batch must still be available and hold the
// full requested quantity; partial draws from an override batch are not
// topped up from other batches.
func AllocateFromBatch(requested int, batch *InventoryBatch, asOf time.Time) (BatchDraw, error) {
	if requested <= 0 {
		return BatchDraw{}, shared.NewValidationError("quantity", "Requested quantity must be positive")
	}
	if batch == nil || !batch.IsAvailable(asOf) {
		return BatchDraw{}, shared.NewInsufficientStockError(requested, 0)
	}
	if batch.QuantityOnHand < requested {
		return BatchDraw{}, shared.NewInsufficientStockError(requested, batch.QuantityOnHand)
	}

	return BatchDraw{
		BatchID:      batch.ID,
		BatchNumber:  batch.BatchNumber,
		Quantity:     requested,
		UnitCost:     batch.CostPrice,
		SellingPrice: batch.SellingPrice,
		ExpiryDate:   batch.ExpiryDate,
	}, nil
}
