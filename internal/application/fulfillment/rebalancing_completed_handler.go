package fulfillment

import (
	"context"
	"fmt"

	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// RebalancingCompletedHandler reacts to completed rebalancings by dropping
// cached availability reports. A completed transfer changes per-store stock,
// so any report computed before it is stale.
type RebalancingCompletedHandler struct {
	orderRepo fulfillment.OrderRepository
	cache     AvailabilityCache
	logger    *zap.Logger
}

// NewRebalancingCompletedHandler creates a new handler for rebalancing completed events
func NewRebalancingCompletedHandler(
	orderRepo fulfillment.OrderRepository,
	cache AvailabilityCache,
	logger *zap.Logger,
) *RebalancingCompletedHandler {
	return &RebalancingCompletedHandler{
		orderRepo: orderRepo,
		cache:     cache,
		logger:    logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *RebalancingCompletedHandler) EventTypes() []string {
	return []string{rebalancing.EventTypeRebalancingCompleted}
}

// Handle invalidates cached availability reports for orders still awaiting
// assignment. Invalidation failures are logged and skipped; the cache entry
// expires on its own TTL.
func (h *RebalancingCompletedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completedEvent, ok := event.(*rebalancing.RebalancingCompletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", rebalancing.EventTypeRebalancingCompleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			rebalancing.EventTypeRebalancingCompleted, event.EventType())
	}

	if h.cache == nil {
		return nil
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 200

	pending, err := h.orderRepo.FindPendingAssignment(ctx, filter)
	if err != nil {
		return fmt.Errorf("listing pending orders: %w", err)
	}

	invalidated := 0
	for i := range pending.Items {
		if err := h.cache.Invalidate(ctx, pending.Items[i].ID); err != nil {
			h.logger.Warn("failed to invalidate availability report",
				zap.String("order_id", pending.Items[i].ID.String()),
				zap.Error(err),
			)
			continue
		}
		invalidated++
	}

	h.logger.Info("invalidated availability reports after rebalancing",
		zap.String("rebalancing_id", completedEvent.RebalancingID.String()),
		zap.Int("orders", invalidated),
	)
	return nil
}

// Ensure RebalancingCompletedHandler implements EventHandler
var _ shared.EventHandler = (*RebalancingCompletedHandler)(nil)
