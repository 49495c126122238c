package fulfillment

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/domain/store"
)

// AvailabilityCache caches evaluation reports per order. Entries are short
// lived and invalidated whenever an assignment or scan changes the picture.
type AvailabilityCache interface {
	// Get returns the cached report for an order, or nil on a miss
	Get(ctx context.Context, orderID uuid.UUID) (*AvailabilityReport, error)
	// Set stores the report for an order
	Set(ctx context.Context, orderID uuid.UUID, report *AvailabilityReport) error
	// Invalidate drops the cached report for an order
	Invalidate(ctx context.Context, orderID uuid.UUID) error
}

// AvailabilityService evaluates which stores can fulfill an order.
// It is a pure read over the inventory ledger; nothing is reserved.
type AvailabilityService struct {
	orderRepo   fulfillment.OrderRepository
	storeRepo   store.Repository
	productRepo catalog.ProductRepository
	batchRepo   inventory.StockBatchRepository
	cache       AvailabilityCache
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	orderRepo fulfillment.OrderRepository,
	storeRepo store.Repository,
	productRepo catalog.ProductRepository,
	batchRepo inventory.StockBatchRepository,
) *AvailabilityService {
	return &AvailabilityService{
		orderRepo:   orderRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		batchRepo:   batchRepo,
	}
}

// SetCache sets the optional report cache
func (s *AvailabilityService) SetCache(cache AvailabilityCache) {
	s.cache = cache
}

// EvaluateStores computes, per eligible store, whether and how well it can
// fulfill every line item of the order, and recommends a store. Stores that
// can fulfill the entire order rank first; the rest rank by fulfillment
// percentage descending, with store ID as the deterministic tie-break.
func (s *AvailabilityService) EvaluateStores(ctx context.Context, orderID uuid.UUID) (*AvailabilityReport, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, orderID); err == nil && cached != nil {
			return cached, nil
		}
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status != fulfillment.OrderStatusPendingAssignment {
		return nil, shared.NewDomainError("INVALID_STATE", "Order is not pending assignment")
	}

	stores, err := s.storeRepo.FindFulfillmentEligible(ctx)
	if err != nil {
		return nil, err
	}

	products, err := s.productCatalog(ctx, order)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &AvailabilityReport{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Stores:      make([]StoreAvailability, 0, len(stores)),
		EvaluatedAt: now,
	}

	for i := range stores {
		availability, err := s.evaluateStore(ctx, &stores[i], order, products, now)
		if err != nil {
			return nil, err
		}
		report.Stores = append(report.Stores, availability)
	}

	rankStores(report.Stores)
	report.Recommendation = recommend(report.Stores)

	if s.cache != nil {
		_ = s.cache.Set(ctx, orderID, report)
	}

	return report, nil
}

func (s *AvailabilityService) evaluateStore(
	ctx context.Context,
	st *store.Store,
	order *fulfillment.Order,
	products map[uuid.UUID]catalog.Product,
	now time.Time,
) (StoreAvailability, error) {
	availability := StoreAvailability{
		StoreID:          st.ID,
		StoreName:        st.Name,
		InventoryDetails: make([]ItemAvailability, 0, len(order.Items)),
	}

	canFulfillAll := true
	for i := range order.Items {
		item := &order.Items[i]

		batches, err := s.batchRepo.FindByProductAndStore(ctx, item.ProductID, st.ID)
		if err != nil {
			return StoreAvailability{}, err
		}
		available := inventory.AvailableQuantity(batches, now)

		detail := ItemAvailability{
			ProductID:         item.ProductID,
			RequiredQuantity:  item.Quantity,
			AvailableQuantity: available,
			CanFulfill:        available >= item.Quantity,
		}
		if p, ok := products[item.ProductID]; ok {
			detail.ProductName = p.Name
			detail.SKU = p.SKU
		}

		availability.InventoryDetails = append(availability.InventoryDetails, detail)
		availability.TotalRequired += item.Quantity
		availability.TotalAvailable += available
		if !detail.CanFulfill {
			canFulfillAll = false
		}
	}

	availability.CanFulfillEntireOrder = canFulfillAll && len(order.Items) > 0
	if availability.TotalRequired > 0 {
		pct := float64(availability.TotalAvailable) / float64(availability.TotalRequired) * 100
		availability.FulfillmentPercentage = math.Min(100, math.Round(pct*100)/100)
	}

	return availability, nil
}

func (s *AvailabilityService) productCatalog(ctx context.Context, order *fulfillment.Order) (map[uuid.UUID]catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(order.Items))
	seen := make(map[uuid.UUID]bool, len(order.Items))
	for i := range order.Items {
		if !seen[order.Items[i].ProductID] {
			seen[order.Items[i].ProductID] = true
			ids = append(ids, order.Items[i].ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// rankStores sorts full fulfillers first, then by fulfillment percentage
// descending, then by store ID ascending for a stable total order.
func rankStores(stores []StoreAvailability) {
	sort.SliceStable(stores, func(i, j int) bool {
		a, b := stores[i], stores[j]
		if a.CanFulfillEntireOrder != b.CanFulfillEntireOrder {
			return a.CanFulfillEntireOrder
		}
		if a.FulfillmentPercentage != b.FulfillmentPercentage {
			return a.FulfillmentPercentage > b.FulfillmentPercentage
		}
		return a.StoreID.String() < b.StoreID.String()
	})
}

func recommend(stores []StoreAvailability) *StoreRecommendation {
	if len(stores) == 0 {
		return nil
	}

	for _, st := range stores {
		if st.CanFulfillEntireOrder {
			return &StoreRecommendation{
				StoreID:               st.StoreID,
				StoreName:             st.StoreName,
				CanFulfillEntireOrder: true,
			}
		}
	}

	top := stores[0]
	return &StoreRecommendation{
		StoreID:   top.StoreID,
		StoreName: top.StoreName,
		Note: fmt.Sprintf("No store can fulfill the entire order. %s covers %.2f%%; restocking or order splitting may be required.",
			top.StoreName, top.FulfillmentPercentage),
	}
}
