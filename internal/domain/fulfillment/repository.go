package fulfillment

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order by ID, items included
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByIDForUpdate finds an order by ID taking a row-level lock.
	// Only meaningful inside a transaction scope; serializes the
	// final-completion check between concurrent scans.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its order number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindPendingAssignment finds e-commerce orders awaiting a store,
	// oldest first
	FindPendingAssignment(ctx context.Context, filter shared.Filter) (shared.Paginated[Order], error)

	// FindByStoreAndStatuses finds a store's orders in any of the given
	// statuses, oldest first
	FindByStoreAndStatuses(ctx context.Context, storeID uuid.UUID, statuses []OrderStatus, filter shared.Filter) (shared.Paginated[Order], error)

	// CountByStoreAndStatus counts a store's orders in one status
	CountByStoreAndStatus(ctx context.Context, storeID uuid.UUID, status OrderStatus) (int64, error)

	// Save creates or updates an order together with its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *Order) error
}
