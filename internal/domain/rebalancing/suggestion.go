package rebalancing

import (
	"math"

	"github.com/google/uuid"
)

// StoreStock summarizes one store's holding of a product: total on-hand
// quantity and the average reorder level across that store's batches.
type StoreStock struct {
	StoreID      uuid.UUID
	Quantity     int
	ReorderLevel float64
}

// ProposedTransfer is one advisory suggestion produced by imbalance
// analysis. Nothing is persisted for a proposal; an operator turns it into
// a Rebalancing via Create.
type ProposedTransfer struct {
	SourceStoreID           uuid.UUID
	SourceQuantity          int
	DestinationStoreID      uuid.UUID
	DestinationQuantity     int
	DestinationReorderLevel float64
	Quantity                int
	Reason                  string
}

// SuggestTransfers analyses one product's cross-store distribution and
// proposes transfers from overstocked stores to understocked ones.
//
// A store is overstocked when it holds more than twice the cross-store
// average, and understocked when it holds less than its own average reorder
// level. The proposed quantity is capped both by the source's surplus above
// the average and by the destination's shortfall below its reorder level,
// so a transfer never overdraws the source nor overfills the destination.
func SuggestTransfers(stocks []StoreStock) []ProposedTransfer {
	if len(stocks) < 2 {
		return nil
	}

	total := 0
	for _, s := range stocks {
		total += s.Quantity
	}
	average := float64(total) / float64(len(stocks))

	var transfers []ProposedTransfer
	for _, source := range stocks {
		if float64(source.Quantity) <= average*2 {
			continue
		}
		for _, dest := range stocks {
			if dest.StoreID == source.StoreID {
				continue
			}
			if float64(dest.Quantity) >= dest.ReorderLevel {
				continue
			}

			suggested := math.Round(math.Min(
				float64(source.Quantity)-average,
				dest.ReorderLevel-float64(dest.Quantity),
			))
			if suggested <= 0 {
				continue
			}

			transfers = append(transfers, ProposedTransfer{
				SourceStoreID:           source.StoreID,
				SourceQuantity:          source.Quantity,
				DestinationStoreID:      dest.StoreID,
				DestinationQuantity:     dest.Quantity,
				DestinationReorderLevel: dest.ReorderLevel,
				Quantity:                int(suggested),
				Reason:                  "Rebalance: Source overstocked, Destination understocked",
			})
		}
	}

	return transfers
}
