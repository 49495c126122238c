package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// StockBatchRepository defines the interface for stock batch persistence.
// Implementations must serialize concurrent deductions against the same
// batch row (FindByIDForUpdate inside a transaction).
type StockBatchRepository interface {
	// FindByID finds a batch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockBatch, error)

	// FindByIDForUpdate finds a batch by ID taking a row-level lock.
	// Only meaningful inside a transaction scope.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*StockBatch, error)

	// FindByProductAndStore finds all batches of a product at one store
	FindByProductAndStore(ctx context.Context, productID, storeID uuid.UUID) ([]StockBatch, error)

	// FindByStore finds all batches held at one store
	FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]StockBatch, error)

	// FindAllStocked finds every batch with quantity > 0, across all
	// products and stores. Used by rebalancing suggestion analysis.
	FindAllStocked(ctx context.Context) ([]StockBatch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, b *StockBatch) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, b *StockBatch) error

	// Delete deletes a batch
	Delete(ctx context.Context, id uuid.UUID) error
}
