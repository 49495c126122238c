package rebalancing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestTransfers(t *testing.T) {
	t.Run("proposes transfer from overstocked to understocked", func(t *testing.T) {
		source := uuid.New()
		dest := uuid.New()
		stocks := []StoreStock{
			{StoreID: source, Quantity: 100, ReorderLevel: 10},
			{StoreID: dest, Quantity: 2, ReorderLevel: 20},
		}
		// average = 51, source > 2*51 is false -> no transfer
		assert.Empty(t, SuggestTransfers(stocks))

		stocks = []StoreStock{
			{StoreID: source, Quantity: 100, ReorderLevel: 10},
			{StoreID: dest, Quantity: 2, ReorderLevel: 20},
			{StoreID: uuid.New(), Quantity: 3, ReorderLevel: 0},
		}
		// average = 35, source 100 > 70 -> overstocked; dest 2 < 20 -> understocked
		transfers := SuggestTransfers(stocks)
		require.Len(t, transfers, 1)

		tr := transfers[0]
		assert.Equal(t, source, tr.SourceStoreID)
		assert.Equal(t, dest, tr.DestinationStoreID)
		// min(100-35, 20-2) = 18
		assert.Equal(t, 18, tr.Quantity)
	})

	t.Run("never exceeds source surplus or destination shortfall", func(t *testing.T) {
		stocks := []StoreStock{
			{StoreID: uuid.New(), Quantity: 90, ReorderLevel: 5},
			{StoreID: uuid.New(), Quantity: 1, ReorderLevel: 8},
			{StoreID: uuid.New(), Quantity: 2, ReorderLevel: 6},
		}

		total := 0
		for _, s := range stocks {
			total += s.Quantity
		}
		average := float64(total) / float64(len(stocks))

		for _, tr := range SuggestTransfers(stocks) {
			assert.LessOrEqual(t, float64(tr.Quantity), float64(tr.SourceQuantity)-average+0.5)
			assert.LessOrEqual(t, float64(tr.Quantity), tr.DestinationReorderLevel-float64(tr.DestinationQuantity)+0.5)
		}
	})

	t.Run("single store yields nothing", func(t *testing.T) {
		assert.Nil(t, SuggestTransfers([]StoreStock{{StoreID: uuid.New(), Quantity: 100, ReorderLevel: 1}}))
	})

	t.Run("balanced stores yield nothing", func(t *testing.T) {
		stocks := []StoreStock{
			{StoreID: uuid.New(), Quantity: 10, ReorderLevel: 5},
			{StoreID: uuid.New(), Quantity: 12, ReorderLevel: 5},
		}
		assert.Empty(t, SuggestTransfers(stocks))
	})

	t.Run("skips destinations at or above their reorder level", func(t *testing.T) {
		stocks := []StoreStock{
			{StoreID: uuid.New(), Quantity: 100, ReorderLevel: 5},
			{StoreID: uuid.New(), Quantity: 10, ReorderLevel: 10},
			{StoreID: uuid.New(), Quantity: 1, ReorderLevel: 0},
		}
		assert.Empty(t, SuggestTransfers(stocks))
	})
}
