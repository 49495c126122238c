package fulfillment

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderStatus represents where an order is in the fulfillment lifecycle
type OrderStatus string

const (
	OrderStatusPendingAssignment OrderStatus = "pending_assignment"
	OrderStatusAssignedToStore   OrderStatus = "assigned_to_store"
	OrderStatusPicking           OrderStatus = "picking"
	OrderStatusReadyForShipment  OrderStatus = "ready_for_shipment"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPendingAssignment, OrderStatusAssignedToStore, OrderStatusPicking, OrderStatusReadyForShipment:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are monotonic; an order never moves backwards and never skips
// from pending_assignment straight to ready_for_shipment.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPendingAssignment:
		return target == OrderStatusAssignedToStore
	case OrderStatusAssignedToStore:
		return target == OrderStatusPicking || target == OrderStatusReadyForShipment
	case OrderStatusPicking:
		return target == OrderStatusReadyForShipment
	case OrderStatusReadyForShipment:
		return false // Terminal for this subsystem
	}
	return false
}

// OrderType distinguishes how the order was placed
type OrderType string

const (
	OrderTypeCounter        OrderType = "counter"
	OrderTypeSocialCommerce OrderType = "social_commerce"
	OrderTypeEcommerce      OrderType = "ecommerce"
)

// IsValid checks if the type is a valid OrderType
func (t OrderType) IsValid() bool {
	switch t {
	case OrderTypeCounter, OrderTypeSocialCommerce, OrderTypeEcommerce:
		return true
	}
	return false
}

// String returns the string representation of OrderType
func (t OrderType) String() string {
	return string(t)
}

// AssignmentRecord is the structured audit trail written when an operator
// assigns an order to a store.
type AssignmentRecord struct {
	StoreID    uuid.UUID `json:"store_id"`
	AssignedBy uuid.UUID `json:"assigned_by"`
	AssignedAt time.Time `json:"assigned_at"`
	Notes      string    `json:"notes,omitempty"`
}

// OrderItem represents a line item in an order. Once a barcode is bound the
// item is fulfilled and the binding never changes.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int
	UnitPrice decimal.Decimal
	BatchID   *uuid.UUID
	BarcodeID *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFulfilled returns true once a barcode has been bound to the item
func (i *OrderItem) IsFulfilled() bool {
	return i.BarcodeID != nil
}

// FulfillmentProgress summarizes how far along an order's picking is
type FulfillmentProgress struct {
	FulfilledItems int     `json:"fulfilled_items"`
	TotalItems     int     `json:"total_items"`
	PendingItems   int     `json:"pending_items"`
	Percentage     float64 `json:"percentage"`
	IsComplete     bool    `json:"is_complete"`
}

// Order represents a customer order moving through store fulfillment.
// StoreID is nil exactly while the order is pending assignment.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber      string
	CustomerID       uuid.UUID
	StoreID          *uuid.UUID
	Type             OrderType
	Status           OrderStatus
	Items            []OrderItem
	TotalAmount      decimal.Decimal
	IsPreorder       bool
	StockAvailableAt *time.Time
	Assignment       *AssignmentRecord
	FulfilledAt      *time.Time
	FulfilledBy      *uuid.UUID
}

// NewOrder creates a new order awaiting store assignment
func NewOrder(orderNumber string, customerID uuid.UUID, orderType OrderType) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !orderType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER_TYPE", fmt.Sprintf("Unknown order type %q", orderType))
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		Type:              orderType,
		Status:            OrderStatusPendingAssignment,
		Items:             make([]OrderItem, 0),
		TotalAmount:       decimal.Zero,
	}, nil
}

// AddItem adds a line item. Only allowed before the order enters fulfillment.
func (o *Order) AddItem(productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPendingAssignment {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items once fulfillment has started")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	item := OrderItem{
		ID:        uuid.New(),
		OrderID:   o.ID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	o.Items = append(o.Items, item)
	o.recalculateTotal()
	o.UpdatedAt = now

	return &o.Items[len(o.Items)-1], nil
}

// Item returns the order item with the given ID
func (o *Order) Item(itemID uuid.UUID) (*OrderItem, error) {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

// AssignToStore moves a pending order into fulfillment at the given store.
// Availability has been validated by the caller; no inventory is mutated here.
func (o *Order) AssignToStore(storeID, actorID uuid.UUID, notes string) error {
	if o.Status != OrderStatusPendingAssignment {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order %s cannot be assigned from status %s", o.OrderNumber, o.Status))
	}
	if storeID == uuid.Nil {
		return shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}

	now := time.Now()
	o.StoreID = &storeID
	o.Status = OrderStatusAssignedToStore
	o.Assignment = &AssignmentRecord{
		StoreID:    storeID,
		AssignedBy: actorID,
		AssignedAt: now,
		Notes:      notes,
	}
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderAssignedEvent(o, actorID))

	return nil
}

// BindItemToUnit records a successful scan: the item is bound to the
// physical unit and its batch, the first scan moves the order to picking,
// and the final scan completes fulfillment. Returns the updated progress.
//
// Cross-aggregate effects of a scan (barcode status, batch decrement) are
// the caller's responsibility and must share one transaction with this.
func (o *Order) BindItemToUnit(itemID, barcodeID, batchID, actorID uuid.UUID) (FulfillmentProgress, error) {
	if o.Status != OrderStatusAssignedToStore && o.Status != OrderStatusPicking {
		return FulfillmentProgress{}, shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order %s cannot be scanned in status %s", o.OrderNumber, o.Status))
	}

	item, err := o.Item(itemID)
	if err != nil {
		return FulfillmentProgress{}, err
	}
	if item.IsFulfilled() {
		return FulfillmentProgress{}, shared.NewDomainError("ALREADY_FULFILLED",
			fmt.Sprintf("Order item %s has already been scanned", itemID))
	}

	now := time.Now()
	item.BarcodeID = &barcodeID
	item.BatchID = &batchID
	item.UpdatedAt = now

	if o.Status == OrderStatusAssignedToStore {
		o.Status = OrderStatusPicking
	}

	o.AddDomainEvent(NewOrderItemScannedEvent(o, item, actorID))

	if o.allItemsFulfilled() {
		o.completeFulfillment(actorID, now)
	}
	o.UpdatedAt = now

	return o.Progress(), nil
}

// MarkReadyForShipment is the manual completion override. Every item must
// already be scanned; the unscanned count is reported otherwise.
func (o *Order) MarkReadyForShipment(actorID uuid.UUID) error {
	if !o.Status.CanTransitionTo(OrderStatusReadyForShipment) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Order %s cannot be marked ready from status %s", o.OrderNumber, o.Status))
	}

	if unscanned := o.unscannedCount(); unscanned > 0 || len(o.Items) == 0 {
		return shared.NewDomainError("INCOMPLETE_FULFILLMENT",
			fmt.Sprintf("Cannot mark as ready for shipment. %d items are not yet scanned.", unscanned))
	}

	o.completeFulfillment(actorID, time.Now())
	o.UpdatedAt = time.Now()

	return nil
}

// Progress returns the current fulfillment progress
func (o *Order) Progress() FulfillmentProgress {
	total := len(o.Items)
	fulfilled := 0
	for i := range o.Items {
		if o.Items[i].IsFulfilled() {
			fulfilled++
		}
	}

	percentage := 0.0
	if total > 0 {
		percentage = math.Round(float64(fulfilled)/float64(total)*10000) / 100
	}

	return FulfillmentProgress{
		FulfilledItems: fulfilled,
		TotalItems:     total,
		PendingItems:   total - fulfilled,
		Percentage:     percentage,
		IsComplete:     total > 0 && fulfilled == total,
	}
}

// IsAssignedTo returns true if the order is being fulfilled by the given store
func (o *Order) IsAssignedTo(storeID uuid.UUID) bool {
	return o.StoreID != nil && *o.StoreID == storeID
}

func (o *Order) allItemsFulfilled() bool {
	return o.unscannedCount() == 0 && len(o.Items) > 0
}

func (o *Order) unscannedCount() int {
	count := 0
	for i := range o.Items {
		if !o.Items[i].IsFulfilled() {
			count++
		}
	}
	return count
}

func (o *Order) completeFulfillment(actorID uuid.UUID, at time.Time) {
	o.Status = OrderStatusReadyForShipment
	o.FulfilledAt = &at
	o.FulfilledBy = &actorID
	o.AddDomainEvent(NewOrderReadyForShipmentEvent(o, actorID))
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].UnitPrice.Mul(decimal.NewFromInt(int64(o.Items[i].Quantity))))
	}
	o.TotalAmount = total
}
