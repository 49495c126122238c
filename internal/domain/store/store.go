package store

import (
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
)

// Store represents a physical or online retail location.
// Warehouses hold stock but never fulfill e-commerce orders directly.
type Store struct {
	shared.BaseAggregateRoot
	Name        string
	Address     string
	IsWarehouse bool
	IsOnline    bool
	Active      bool
}

// NewStore creates a new store
func NewStore(name, address string, isWarehouse, isOnline bool) (*Store, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_STORE_NAME", "Store name cannot be empty")
	}

	return &Store{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Address:           address,
		IsWarehouse:       isWarehouse,
		IsOnline:          isOnline,
		Active:            true,
	}, nil
}

// CanFulfillOnlineOrders returns true if the store is eligible to be
// assigned e-commerce orders: active, online-enabled, and not a warehouse.
func (s *Store) CanFulfillOnlineOrders() bool {
	return s.Active && s.IsOnline && !s.IsWarehouse
}

// Activate marks the store as active
func (s *Store) Activate() {
	s.Active = true
	s.UpdatedAt = time.Now()
}

// Deactivate marks the store as inactive
func (s *Store) Deactivate() {
	s.Active = false
	s.UpdatedAt = time.Now()
}
