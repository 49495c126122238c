package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/domain/store"
)

// FulfillmentService drives orders through the fulfillment state machine.
// Every mutating operation runs inside a single transaction scope.
type FulfillmentService struct {
	txScope        TransactionScope
	orderRepo      fulfillment.OrderRepository
	storeRepo      store.Repository
	productRepo    catalog.ProductRepository
	barcodeRepo    catalog.BarcodeRepository
	eventPublisher shared.EventPublisher
	cache          AvailabilityCache
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(
	txScope TransactionScope,
	orderRepo fulfillment.OrderRepository,
	storeRepo store.Repository,
	productRepo catalog.ProductRepository,
	barcodeRepo catalog.BarcodeRepository,
) *FulfillmentService {
	return &FulfillmentService{
		txScope:     txScope,
		orderRepo:   orderRepo,
		storeRepo:   storeRepo,
		productRepo: productRepo,
		barcodeRepo: barcodeRepo,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *FulfillmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetAvailabilityCache sets the cache to invalidate after mutations
func (s *FulfillmentService) SetAvailabilityCache(cache AvailabilityCache) {
	s.cache = cache
}

// AssignToStore assigns a pending order to a store after validating that
// the store's non-expired stock covers every line item. No inventory is
// reserved; availability is re-validated at scan time.
func (s *FulfillmentService) AssignToStore(ctx context.Context, cmd AssignToStoreCommand) (*OrderDTO, error) {
	if cmd.ActorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting employee is required")
	}

	st, err := s.storeRepo.FindByID(ctx, cmd.StoreID)
	if err != nil {
		return nil, err
	}
	if !st.CanFulfillOnlineOrders() {
		return nil, shared.NewDomainError("INVALID_STORE",
			fmt.Sprintf("Store %s is not eligible for order fulfillment", st.Name))
	}

	var dto OrderDTO
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if order.Status != fulfillment.OrderStatusPendingAssignment {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Order %s cannot be assigned from status %s", order.OrderNumber, order.Status))
		}

		now := time.Now()
		for i := range order.Items {
			item := &order.Items[i]
			batches, err := repos.Batches().FindByProductAndStore(ctx, item.ProductID, st.ID)
			if err != nil {
				return err
			}
			available := inventory.AvailableQuantity(batches, now)
			if available < item.Quantity {
				return shared.NewDomainError("INSUFFICIENT_INVENTORY",
					fmt.Sprintf("Insufficient inventory for product %s at store %s: required %d, available %d",
						s.productName(ctx, item.ProductID), st.Name, item.Quantity, available))
			}
		}

		if err := order.AssignToStore(st.ID, cmd.ActorID, cmd.Notes); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}

		s.publishEvents(ctx, order)
		dto = toOrderDTO(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cmd.OrderID)
	return &dto, nil
}

// ScanBarcode binds a physical unit to an order item. In one transaction it
// validates the scan, marks the barcode in_shipment, decrements the bound
// batch by one unit, and advances the order state machine.
func (s *FulfillmentService) ScanBarcode(ctx context.Context, cmd ScanBarcodeCommand) (*ScanResult, error) {
	if cmd.ActorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting employee is required")
	}
	if cmd.Barcode == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Barcode value is required")
	}

	var result ScanResult
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if order.Status != fulfillment.OrderStatusAssignedToStore && order.Status != fulfillment.OrderStatusPicking {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Order %s cannot be scanned in status %s", order.OrderNumber, order.Status))
		}

		item, err := order.Item(cmd.OrderItemID)
		if err != nil {
			return shared.NewDomainError("NOT_FOUND", "Order item not found on this order")
		}
		if item.IsFulfilled() {
			return shared.NewDomainError("ALREADY_FULFILLED",
				fmt.Sprintf("Order item %s has already been scanned", item.ID))
		}

		barcode, err := repos.Barcodes().FindScannable(ctx, cmd.Barcode, *order.StoreID)
		if err != nil {
			return err
		}
		if barcode.ProductID != item.ProductID {
			return shared.NewDomainError("PRODUCT_MISMATCH",
				fmt.Sprintf("Scanned barcode belongs to product %s, order item expects %s",
					s.productName(ctx, barcode.ProductID), s.productName(ctx, item.ProductID)))
		}

		batch, err := repos.Batches().FindByIDForUpdate(ctx, barcode.BatchID)
		if err != nil {
			return err
		}
		if err := batch.Deduct(1); err != nil {
			return err
		}
		if err := barcode.MarkInShipment(order.ID, order.OrderNumber, cmd.ActorID, time.Now()); err != nil {
			return err
		}
		progress, err := order.BindItemToUnit(item.ID, barcode.ID, batch.ID, cmd.ActorID)
		if err != nil {
			return err
		}

		if err := repos.Batches().SaveWithLock(ctx, batch); err != nil {
			return err
		}
		if err := repos.Barcodes().SaveWithLock(ctx, barcode); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}

		s.publishEvents(ctx, order)
		result = ScanResult{
			OrderID:     order.ID,
			OrderItemID: item.ID,
			BarcodeID:   barcode.ID,
			Barcode:     barcode.Barcode,
			BatchID:     batch.ID,
			OrderStatus: order.Status,
			Progress:    progress,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, cmd.OrderID)
	return &result, nil
}

// MarkReadyForShipment is the manual completion override for an order whose
// items have all been scanned
func (s *FulfillmentService) MarkReadyForShipment(ctx context.Context, orderID, actorID uuid.UUID) (*OrderDTO, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Acting employee is required")
	}

	var dto OrderDTO
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if err := order.MarkReadyForShipment(actorID); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}

		s.publishEvents(ctx, order)
		dto = toOrderDTO(order)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto, nil
}

// ListPendingOrders returns e-commerce orders awaiting assignment, oldest first
func (s *FulfillmentService) ListPendingOrders(ctx context.Context, filter shared.Filter) (shared.Paginated[OrderDTO], error) {
	page, err := s.orderRepo.FindPendingAssignment(ctx, filter)
	if err != nil {
		return shared.Paginated[OrderDTO]{}, err
	}
	return mapPage(page), nil
}

// ListAssignedOrders returns a store's fulfillment queue with per-status counts
func (s *FulfillmentService) ListAssignedOrders(ctx context.Context, storeID uuid.UUID, statuses []fulfillment.OrderStatus, filter shared.Filter) (*AssignedOrdersResult, error) {
	if _, err := s.storeRepo.FindByID(ctx, storeID); err != nil {
		return nil, err
	}

	if len(statuses) == 0 {
		statuses = []fulfillment.OrderStatus{fulfillment.OrderStatusAssignedToStore, fulfillment.OrderStatusPicking}
	}
	for _, status := range statuses {
		if !status.IsValid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", fmt.Sprintf("Unknown order status %q", status))
		}
	}

	page, err := s.orderRepo.FindByStoreAndStatuses(ctx, storeID, statuses, filter)
	if err != nil {
		return nil, err
	}

	summary := StoreQueueSummary{}
	counts := []struct {
		status fulfillment.OrderStatus
		target *int64
	}{
		{fulfillment.OrderStatusAssignedToStore, &summary.AssignedToStoreCount},
		{fulfillment.OrderStatusPicking, &summary.PickingCount},
		{fulfillment.OrderStatusReadyForShipment, &summary.ReadyForShipmentCount},
	}
	for _, c := range counts {
		n, err := s.orderRepo.CountByStoreAndStatus(ctx, storeID, c.status)
		if err != nil {
			return nil, err
		}
		*c.target = n
	}

	mapped := mapPage(page)
	return &AssignedOrdersResult{
		Orders:     mapped.Items,
		Total:      mapped.Total,
		Page:       mapped.Page,
		PageSize:   mapped.PageSize,
		TotalPages: mapped.TotalPages,
		Summary:    summary,
	}, nil
}

// OrderFulfillmentDetails returns one order with per-item scan state,
// scoped to the store working it
func (s *FulfillmentService) OrderFulfillmentDetails(ctx context.Context, storeID, orderID uuid.UUID) (*OrderDetailsResult, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsAssignedTo(storeID) {
		return nil, shared.ErrNotFound
	}

	dto := toOrderDTO(order)
	for i := range dto.Items {
		if dto.Items[i].ScanStatus == "scanned" {
			continue
		}
		count, err := s.barcodeRepo.CountScannableByProduct(ctx, dto.Items[i].ProductID, storeID)
		if err != nil {
			return nil, err
		}
		dto.Items[i].AvailableUnits = &count
	}

	progress := order.Progress()
	return &OrderDetailsResult{
		Order:    dto,
		Progress: progress,
		CanShip:  progress.IsComplete,
	}, nil
}

func (s *FulfillmentService) productName(ctx context.Context, productID uuid.UUID) string {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return productID.String()
	}
	return p.Name
}

func (s *FulfillmentService) publishEvents(ctx context.Context, order *fulfillment.Order) {
	if s.eventPublisher == nil {
		return
	}
	if events := order.GetDomainEvents(); len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		order.ClearDomainEvents()
	}
}

func (s *FulfillmentService) invalidate(ctx context.Context, orderID uuid.UUID) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, orderID)
	}
}

func mapPage(page shared.Paginated[fulfillment.Order]) shared.Paginated[OrderDTO] {
	items := make([]OrderDTO, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toOrderDTO(&page.Items[i]))
	}
	return shared.Paginated[OrderDTO]{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
