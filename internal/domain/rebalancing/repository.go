package rebalancing

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// Repository defines the interface for rebalancing persistence
type Repository interface {
	// FindByID finds a rebalancing request by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Rebalancing, error)

	// FindAll finds rebalancing requests, newest first. Supported filter
	// keys: status, product_id, store_id (matches source or destination).
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[Rebalancing], error)

	// FindRecent finds the most recently created requests
	FindRecent(ctx context.Context, limit int) ([]Rebalancing, error)

	// CountByStatus counts requests per status
	CountByStatus(ctx context.Context) (map[Status]int64, error)

	// Save creates or updates a rebalancing request
	Save(ctx context.Context, r *Rebalancing) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, r *Rebalancing) error
}

// DispatchRepository defines the interface for dispatch persistence
type DispatchRepository interface {
	// FindByID finds a dispatch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Dispatch, error)

	// Save creates or updates a dispatch
	Save(ctx context.Context, d *Dispatch) error
}
