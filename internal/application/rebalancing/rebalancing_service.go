package rebalancing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/domain/store"
)

// RecentActivityLimit caps the statistics view's recent record list
const RecentActivityLimit = 10

// RebalancingService manages the propose/approve/execute/complete lifecycle
// of cross-store stock transfers
type RebalancingService struct {
	txScope         TransactionScope
	rebalancingRepo rebalancing.Repository
	dispatchRepo    rebalancing.DispatchRepository
	batchRepo       inventory.StockBatchRepository
	productRepo     catalog.ProductRepository
	storeRepo       store.Repository
	eventPublisher  shared.EventPublisher
}

// NewRebalancingService creates a new RebalancingService
func NewRebalancingService(
	txScope TransactionScope,
	rebalancingRepo rebalancing.Repository,
	dispatchRepo rebalancing.DispatchRepository,
	batchRepo inventory.StockBatchRepository,
	productRepo catalog.ProductRepository,
	storeRepo store.Repository,
) *RebalancingService {
	return &RebalancingService{
		txScope:         txScope,
		rebalancingRepo: rebalancingRepo,
		dispatchRepo:    dispatchRepo,
		batchRepo:       batchRepo,
		productRepo:     productRepo,
		storeRepo:       storeRepo,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *RebalancingService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Suggest analyses stock spread across stores and proposes transfers from
// overstocked to understocked stores. Advisory only; nothing is persisted.
func (s *RebalancingService) Suggest(ctx context.Context) (*SuggestionsResult, error) {
	batches, err := s.batchRepo.FindAllStocked(ctx)
	if err != nil {
		return nil, err
	}

	type storeAccum struct {
		quantity   int
		reorderSum int
		batchCount int
	}
	byProduct := make(map[uuid.UUID]map[uuid.UUID]*storeAccum)
	for i := range batches {
		b := &batches[i]
		stores, ok := byProduct[b.ProductID]
		if !ok {
			stores = make(map[uuid.UUID]*storeAccum)
			byProduct[b.ProductID] = stores
		}
		acc, ok := stores[b.StoreID]
		if !ok {
			acc = &storeAccum{}
			stores[b.StoreID] = acc
		}
		acc.quantity += b.Quantity
		acc.reorderSum += b.ReorderLevel
		acc.batchCount++
	}

	result := &SuggestionsResult{Suggestions: make([]Suggestion, 0)}

	productIDs := make([]uuid.UUID, 0, len(byProduct))
	for productID, stores := range byProduct {
		if len(stores) >= 2 {
			productIDs = append(productIDs, productID)
		}
	}
	// Deterministic output ordering across runs
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i].String() < productIDs[j].String() })

	products, err := s.productsByID(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	storeIDSet := make(map[uuid.UUID]bool)
	for _, productID := range productIDs {
		for storeID := range byProduct[productID] {
			storeIDSet[storeID] = true
		}
	}
	storeNames, err := s.storeNames(ctx, storeIDSet)
	if err != nil {
		return nil, err
	}

	for _, productID := range productIDs {
		stores := byProduct[productID]
		stocks := make([]rebalancing.StoreStock, 0, len(stores))
		for storeID, acc := range stores {
			stocks = append(stocks, rebalancing.StoreStock{
				StoreID:      storeID,
				Quantity:     acc.quantity,
				ReorderLevel: float64(acc.reorderSum) / float64(acc.batchCount),
			})
		}
		sort.Slice(stocks, func(i, j int) bool { return stocks[i].StoreID.String() < stocks[j].StoreID.String() })

		for _, tr := range rebalancing.SuggestTransfers(stocks) {
			suggestion := Suggestion{
				ProductID:           productID,
				FromStoreID:         tr.SourceStoreID,
				FromStoreName:       storeNames[tr.SourceStoreID],
				FromStoreQuantity:   tr.SourceQuantity,
				ToStoreID:           tr.DestinationStoreID,
				ToStoreName:         storeNames[tr.DestinationStoreID],
				ToStoreQuantity:     tr.DestinationQuantity,
				ToStoreReorderLevel: tr.DestinationReorderLevel,
				SuggestedQuantity:   tr.Quantity,
				Reason:              tr.Reason,
			}
			if p, ok := products[productID]; ok {
				suggestion.ProductName = p.Name
				suggestion.SKU = p.SKU
			}
			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	result.TotalSuggestions = len(result.Suggestions)
	return result, nil
}

// Create validates source availability and records a pending transfer
// request. The check is point-in-time; nothing is reserved.
func (s *RebalancingService) Create(ctx context.Context, cmd CreateCommand) (*RebalancingDTO, error) {
	if cmd.ActorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting employee is required")
	}
	if _, err := s.productRepo.FindByID(ctx, cmd.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.storeRepo.FindByID(ctx, cmd.SourceStoreID); err != nil {
		return nil, err
	}
	if _, err := s.storeRepo.FindByID(ctx, cmd.DestinationStoreID); err != nil {
		return nil, err
	}

	var dto RebalancingDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		batches, err := repos.Batches().FindByProductAndStore(ctx, cmd.ProductID, cmd.SourceStoreID)
		if err != nil {
			return err
		}
		if cmd.SourceBatchID != nil {
			scoped := batches[:0]
			for _, b := range batches {
				if b.ID == *cmd.SourceBatchID {
					scoped = append(scoped, b)
				}
			}
			batches = scoped
		}

		available := inventory.AvailableQuantity(batches, time.Now())
		if available < cmd.Quantity {
			return shared.NewDomainError("INSUFFICIENT_INVENTORY",
				fmt.Sprintf("Source store doesn't have enough quantity. Available: %d, requested: %d", available, cmd.Quantity))
		}

		r, err := rebalancing.NewRebalancing(
			cmd.ProductID, cmd.SourceStoreID, cmd.DestinationStoreID,
			cmd.SourceBatchID, cmd.Quantity, cmd.Reason, cmd.Priority, cmd.ActorID,
		)
		if err != nil {
			return err
		}
		if err := repos.Rebalancings().Save(ctx, r); err != nil {
			return err
		}

		s.publishEvents(ctx, r)
		dto = toRebalancingDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

// Approve moves a pending request to approved and creates the dispatch
// that will physically carry the transfer
func (s *RebalancingService) Approve(ctx context.Context, id, actorID uuid.UUID) (*RebalancingDTO, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting employee is required")
	}

	var dto RebalancingDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.Rebalancings().FindByID(ctx, id)
		if err != nil {
			return err
		}

		dispatch, err := rebalancing.NewDispatch(
			r.SourceStoreID, r.DestinationStoreID, actorID,
			fmt.Sprintf("Inventory Rebalancing: %s", r.Reason),
		)
		if err != nil {
			return err
		}
		if err := r.Approve(actorID, dispatch.ID); err != nil {
			return err
		}

		if err := repos.Dispatches().Save(ctx, dispatch); err != nil {
			return err
		}
		if err := repos.Rebalancings().SaveWithLock(ctx, r); err != nil {
			return err
		}

		s.publishEvents(ctx, r)
		dto = toRebalancingDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

// Reject declines a pending request, carrying the rejection reason into
// the record
func (s *RebalancingService) Reject(ctx context.Context, id, actorID uuid.UUID, reason string) (*RebalancingDTO, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting employee is required")
	}

	var dto RebalancingDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.Rebalancings().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Reject(actorID, reason); err != nil {
			return err
		}
		if err := repos.Rebalancings().SaveWithLock(ctx, r); err != nil {
			return err
		}

		dto = toRebalancingDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

// Cancel withdraws a pending or approved request
func (s *RebalancingService) Cancel(ctx context.Context, id uuid.UUID) (*RebalancingDTO, error) {
	var dto RebalancingDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.Rebalancings().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Cancel(); err != nil {
			return err
		}
		if err := repos.Rebalancings().SaveWithLock(ctx, r); err != nil {
			return err
		}

		dto = toRebalancingDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

// Complete closes an approved request once its dispatch reports delivered.
// The inventory movement itself is executed by the dispatch subsystem.
func (s *RebalancingService) Complete(ctx context.Context, id uuid.UUID) (*RebalancingDTO, error) {
	var dto RebalancingDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		r, err := repos.Rebalancings().FindByID(ctx, id)
		if err != nil {
			return err
		}

		dispatchStatus := rebalancing.DispatchStatusDelivered
		if r.DispatchID != nil {
			dispatch, err := repos.Dispatches().FindByID(ctx, *r.DispatchID)
			if err != nil {
				return err
			}
			dispatchStatus = dispatch.Status
		}

		if err := r.Complete(dispatchStatus); err != nil {
			return err
		}
		if err := repos.Rebalancings().SaveWithLock(ctx, r); err != nil {
			return err
		}

		s.publishEvents(ctx, r)
		dto = toRebalancingDTO(r)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

// List returns rebalancing requests newest first. Filter keys: status,
// product_id, store_id.
func (s *RebalancingService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[RebalancingDTO], error) {
	page, err := s.rebalancingRepo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[RebalancingDTO]{}, err
	}

	items := make([]RebalancingDTO, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toRebalancingDTO(&page.Items[i]))
	}
	return shared.Paginated[RebalancingDTO]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}, nil
}

// GetStatistics summarizes rebalancing activity: totals per status and the
// most recent records
func (s *RebalancingService) GetStatistics(ctx context.Context) (*Statistics, error) {
	counts, err := s.rebalancingRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	total := int64(0)
	for _, n := range counts {
		total += n
	}

	recent, err := s.rebalancingRepo.FindRecent(ctx, RecentActivityLimit)
	if err != nil {
		return nil, err
	}
	activity := make([]RebalancingDTO, 0, len(recent))
	for i := range recent {
		activity = append(activity, toRebalancingDTO(&recent[i]))
	}

	return &Statistics{
		Total:          total,
		ByStatus:       counts,
		RecentActivity: activity,
	}, nil
}

// UpdateDispatchStatus records a status change reported by the shipping
// subsystem. A delivered dispatch is what unlocks Complete.
func (s *RebalancingService) UpdateDispatchStatus(ctx context.Context, dispatchID uuid.UUID, target rebalancing.DispatchStatus) (*DispatchDTO, error) {
	var dto DispatchDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		dispatch, err := repos.Dispatches().FindByID(ctx, dispatchID)
		if err != nil {
			return err
		}
		if err := dispatch.UpdateStatus(target); err != nil {
			return err
		}
		if err := repos.Dispatches().Save(ctx, dispatch); err != nil {
			return err
		}

		dto = toDispatchDTO(dispatch)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

func (s *RebalancingService) productsByID(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]catalog.Product, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]catalog.Product{}, nil
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

func (s *RebalancingService) storeNames(ctx context.Context, idSet map[uuid.UUID]bool) (map[uuid.UUID]string, error) {
	if len(idSet) == 0 {
		return map[uuid.UUID]string{}, nil
	}
	ids := make([]uuid.UUID, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	stores, err := s.storeRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(stores))
	for _, st := range stores {
		names[st.ID] = st.Name
	}
	return names, nil
}

func (s *RebalancingService) publishEvents(ctx context.Context, r *rebalancing.Rebalancing) {
	if s.eventPublisher == nil {
		return
	}
	if events := r.GetDomainEvents(); len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		r.ClearDomainEvents()
	}
}
