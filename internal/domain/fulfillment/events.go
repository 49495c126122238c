package fulfillment

import (
	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderAssigned         = "OrderAssigned"
	EventTypeOrderItemScanned      = "OrderItemScanned"
	EventTypeOrderReadyForShipment = "OrderReadyForShipment"
)

// OrderAssignedEvent is raised when an operator assigns an order to a store
type OrderAssignedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	StoreID     uuid.UUID `json:"store_id"`
	AssignedBy  uuid.UUID `json:"assigned_by"`
}

// NewOrderAssignedEvent creates a new OrderAssignedEvent
func NewOrderAssignedEvent(order *Order, actorID uuid.UUID) *OrderAssignedEvent {
	return &OrderAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderAssigned, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		StoreID:         *order.StoreID,
		AssignedBy:      actorID,
	}
}

// EventType returns the event type name
func (e *OrderAssignedEvent) EventType() string {
	return EventTypeOrderAssigned
}

// OrderItemScannedEvent is raised when a barcode scan binds a physical unit
// to an order item
type OrderItemScannedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OrderItemID uuid.UUID `json:"order_item_id"`
	ProductID   uuid.UUID `json:"product_id"`
	BarcodeID   uuid.UUID `json:"barcode_id"`
	BatchID     uuid.UUID `json:"batch_id"`
	ScannedBy   uuid.UUID `json:"scanned_by"`
}

// NewOrderItemScannedEvent creates a new OrderItemScannedEvent
func NewOrderItemScannedEvent(order *Order, item *OrderItem, actorID uuid.UUID) *OrderItemScannedEvent {
	return &OrderItemScannedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderItemScanned, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		OrderItemID:     item.ID,
		ProductID:       item.ProductID,
		BarcodeID:       *item.BarcodeID,
		BatchID:         *item.BatchID,
		ScannedBy:       actorID,
	}
}

// EventType returns the event type name
func (e *OrderItemScannedEvent) EventType() string {
	return EventTypeOrderItemScanned
}

// OrderReadyForShipmentEvent is raised when every item of an order has been
// bound to a physical unit
type OrderReadyForShipmentEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	StoreID     uuid.UUID `json:"store_id"`
	FulfilledBy uuid.UUID `json:"fulfilled_by"`
}

// NewOrderReadyForShipmentEvent creates a new OrderReadyForShipmentEvent
func NewOrderReadyForShipmentEvent(order *Order, actorID uuid.UUID) *OrderReadyForShipmentEvent {
	return &OrderReadyForShipmentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderReadyForShipment, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		OrderNumber:     order.OrderNumber,
		StoreID:         *order.StoreID,
		FulfilledBy:     actorID,
	}
}

// EventType returns the event type name
func (e *OrderReadyForShipmentEvent) EventType() string {
	return EventTypeOrderReadyForShipment
}
