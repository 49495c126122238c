package inventory

import (
	"sort"
	"time"
)

// SortForConsumption orders batches the way fulfillment draws them down:
// earliest expiry first (batches without an expiry date last), then oldest
// batch first. The slice is sorted in place.
func SortForConsumption(batches []StockBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.CreatedAt.Before(b.CreatedAt)
		default:
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
	})
}

// AvailableBatches filters out expired and empty batches and returns the
// remainder in consumption order.
func AvailableBatches(batches []StockBatch, at time.Time) []StockBatch {
	available := make([]StockBatch, 0, len(batches))
	for _, b := range batches {
		if b.IsAvailableAt(at) {
			available = append(available, b)
		}
	}
	SortForConsumption(available)
	return available
}

// AvailableQuantity sums the on-hand quantity of non-expired batches
func AvailableQuantity(batches []StockBatch, at time.Time) int {
	total := 0
	for _, b := range batches {
		if b.IsAvailableAt(at) {
			total += b.Quantity
		}
	}
	return total
}
