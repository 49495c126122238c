package rebalancing

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/domain/store"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher collects published domain events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) EventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// MockRebalancingRepository is a mock implementation of rebalancing.Repository
type MockRebalancingRepository struct {
	mock.Mock
}

func (m *MockRebalancingRepository) FindByID(ctx context.Context, id uuid.UUID) (*rebalancing.Rebalancing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rebalancing.Rebalancing), args.Error(1)
}

func (m *MockRebalancingRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[rebalancing.Rebalancing], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[rebalancing.Rebalancing]), args.Error(1)
}

func (m *MockRebalancingRepository) FindRecent(ctx context.Context, limit int) ([]rebalancing.Rebalancing, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]rebalancing.Rebalancing), args.Error(1)
}

func (m *MockRebalancingRepository) CountByStatus(ctx context.Context) (map[rebalancing.Status]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(map[rebalancing.Status]int64), args.Error(1)
}

func (m *MockRebalancingRepository) Save(ctx context.Context, r *rebalancing.Rebalancing) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRebalancingRepository) SaveWithLock(ctx context.Context, r *rebalancing.Rebalancing) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockDispatchRepository is a mock implementation of rebalancing.DispatchRepository
type MockDispatchRepository struct {
	mock.Mock
}

func (m *MockDispatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*rebalancing.Dispatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rebalancing.Dispatch), args.Error(1)
}

func (m *MockDispatchRepository) Save(ctx context.Context, d *rebalancing.Dispatch) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

// MockStockBatchRepository is a mock implementation of inventory.StockBatchRepository
type MockStockBatchRepository struct {
	mock.Mock
}

func (m *MockStockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.StockBatch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindByProductAndStore(ctx context.Context, productID, storeID uuid.UUID) ([]inventory.StockBatch, error) {
	args := m.Called(ctx, productID, storeID)
	return args.Get(0).([]inventory.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]inventory.StockBatch, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).([]inventory.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) FindAllStocked(ctx context.Context) ([]inventory.StockBatch, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.StockBatch), args.Error(1)
}

func (m *MockStockBatchRepository) Save(ctx context.Context, b *inventory.StockBatch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStockBatchRepository) SaveWithLock(ctx context.Context, b *inventory.StockBatch) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockStockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStoreRepository is a mock implementation of store.Repository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]store.Store, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindFulfillmentEligible(ctx context.Context) ([]store.Store, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]store.Store, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
