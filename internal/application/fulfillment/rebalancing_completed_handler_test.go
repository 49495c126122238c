package fulfillment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRebalancingCompletedHandler(t *testing.T) {
	newCompletedEvent := func(t *testing.T) *rebalancing.RebalancingCompletedEvent {
		t.Helper()
		r, err := rebalancing.NewRebalancing(
			uuid.New(), uuid.New(), uuid.New(), nil, 5, "Low stock", rebalancing.PriorityMedium, uuid.New(),
		)
		require.NoError(t, err)
		return rebalancing.NewRebalancingCompletedEvent(r)
	}

	t.Run("invalidates reports for pending orders", func(t *testing.T) {
		orderRepo := new(MockOrderRepository)
		cache := newStubAvailabilityCache()

		order, err := fulfillment.NewOrder("ORD-500", uuid.New(), fulfillment.OrderTypeEcommerce)
		require.NoError(t, err)
		cache.reports[order.ID] = &AvailabilityReport{OrderID: order.ID}

		orderRepo.On("FindPendingAssignment", mock.Anything, mock.Anything).
			Return(shared.NewPaginated([]fulfillment.Order{*order}, 1, 1, 200), nil)

		h := NewRebalancingCompletedHandler(orderRepo, cache, zap.NewNop())
		require.NoError(t, h.Handle(context.Background(), newCompletedEvent(t)))

		assert.Equal(t, []uuid.UUID{order.ID}, cache.invalidated)
		orderRepo.AssertExpectations(t)
	})

	t.Run("subscribes to the completion event only", func(t *testing.T) {
		h := NewRebalancingCompletedHandler(new(MockOrderRepository), newStubAvailabilityCache(), zap.NewNop())
		assert.Equal(t, []string{rebalancing.EventTypeRebalancingCompleted}, h.EventTypes())
	})

	t.Run("rejects foreign event types", func(t *testing.T) {
		h := NewRebalancingCompletedHandler(new(MockOrderRepository), newStubAvailabilityCache(), zap.NewNop())

		order, err := fulfillment.NewOrder("ORD-501", uuid.New(), fulfillment.OrderTypeEcommerce)
		require.NoError(t, err)
		require.NoError(t, order.AssignToStore(uuid.New(), uuid.New(), ""))
		foreign := fulfillment.NewOrderAssignedEvent(order, uuid.New())

		assert.Error(t, h.Handle(context.Background(), foreign))
	})
}
