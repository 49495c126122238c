package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// Repository defines the interface for store persistence
type Repository interface {
	// FindByID finds a store by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByIDs finds stores by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Store, error)

	// FindFulfillmentEligible finds active, online, non-warehouse stores
	FindFulfillmentEligible(ctx context.Context) ([]Store, error)

	// FindAll finds all stores with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, error)

	// Save creates or updates a store
	Save(ctx context.Context, s *Store) error

	// Delete deletes a store
	Delete(ctx context.Context, id uuid.UUID) error
}
