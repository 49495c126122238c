package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// StockBatch represents a quantity-tracked lot of one product at one store,
// with its own expiry date, unit cost and reorder threshold.
type StockBatch struct {
	shared.BaseAggregateRoot
	ProductID    uuid.UUID
	StoreID      uuid.UUID
	BatchNumber  string
	Quantity     int
	ReorderLevel int
	UnitCost     decimal.Decimal
	ExpiryDate   *time.Time
}

// NewStockBatch creates a new stock batch received into a store
func NewStockBatch(
	productID, storeID uuid.UUID,
	batchNumber string,
	quantity, reorderLevel int,
	unitCost decimal.Decimal,
	expiryDate *time.Time,
) (*StockBatch, error) {
	if productID == uuid.Nil || storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch must reference a product and a store")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Batch quantity cannot be negative")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	return &StockBatch{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		StoreID:           storeID,
		BatchNumber:       batchNumber,
		Quantity:          quantity,
		ReorderLevel:      reorderLevel,
		UnitCost:          unitCost,
		ExpiryDate:        expiryDate,
	}, nil
}

// IsExpiredAt returns true if the batch is expired at the reference time
func (b *StockBatch) IsExpiredAt(at time.Time) bool {
	if b.ExpiryDate == nil {
		return false
	}
	return b.ExpiryDate.Before(at)
}

// IsExpired returns true if the batch has expired
func (b *StockBatch) IsExpired() bool {
	return b.IsExpiredAt(time.Now())
}

// IsAvailableAt returns true if the batch can contribute to fulfillment
// at the reference time: positive quantity and not expired.
func (b *StockBatch) IsAvailableAt(at time.Time) bool {
	return b.Quantity > 0 && !b.IsExpiredAt(at)
}

// Deduct removes units from the batch. The quantity never goes negative;
// asking for more than is on hand is a domain error, not a clamp.
func (b *StockBatch) Deduct(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Deduction quantity must be positive")
	}
	if quantity > b.Quantity {
		return shared.NewDomainError("INSUFFICIENT_INVENTORY",
			fmt.Sprintf("Batch %s has %d units, cannot deduct %d", b.BatchNumber, b.Quantity, quantity))
	}

	b.Quantity -= quantity
	b.UpdatedAt = time.Now()
	return nil
}

// Add increases the batch quantity (receiving or returns)
func (b *StockBatch) Add(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Added quantity must be positive")
	}

	b.Quantity += quantity
	b.UpdatedAt = time.Now()
	return nil
}

// IsBelowReorderLevel returns true if the on-hand quantity has fallen
// under the batch's reorder threshold
func (b *StockBatch) IsBelowReorderLevel() bool {
	return b.Quantity < b.ReorderLevel
}

// TotalValue returns quantity * unit cost
func (b *StockBatch) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(int64(b.Quantity)).Mul(b.UnitCost)
}
