package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/shopspring/decimal"
)

// ItemAvailability reports one store's ability to cover one order line
type ItemAvailability struct {
	ProductID         uuid.UUID `json:"product_id"`
	ProductName       string    `json:"product_name"`
	SKU               string    `json:"sku"`
	RequiredQuantity  int       `json:"required_quantity"`
	AvailableQuantity int       `json:"available_quantity"`
	CanFulfill        bool      `json:"can_fulfill"`
}

// StoreAvailability aggregates a store's capability over every order line
type StoreAvailability struct {
	StoreID               uuid.UUID          `json:"store_id"`
	StoreName             string             `json:"store_name"`
	CanFulfillEntireOrder bool               `json:"can_fulfill_entire_order"`
	FulfillmentPercentage float64            `json:"fulfillment_percentage"`
	TotalRequired         int                `json:"total_required"`
	TotalAvailable        int                `json:"total_available"`
	InventoryDetails      []ItemAvailability `json:"inventory_details"`
}

// StoreRecommendation names the store an operator should assign, with a
// note when only partial fulfillment is possible
type StoreRecommendation struct {
	StoreID               uuid.UUID `json:"store_id"`
	StoreName             string    `json:"store_name"`
	CanFulfillEntireOrder bool      `json:"can_fulfill_entire_order"`
	Note                  string    `json:"note,omitempty"`
}

// AvailabilityReport is the full output of store evaluation for one order
type AvailabilityReport struct {
	OrderID        uuid.UUID            `json:"order_id"`
	OrderNumber    string               `json:"order_number"`
	Stores         []StoreAvailability  `json:"stores"`
	Recommendation *StoreRecommendation `json:"recommendation,omitempty"`
	EvaluatedAt    time.Time            `json:"evaluated_at"`
}

// AssignToStoreCommand carries an operator's store assignment
type AssignToStoreCommand struct {
	OrderID uuid.UUID
	StoreID uuid.UUID
	ActorID uuid.UUID
	Notes   string
}

// ScanBarcodeCommand carries one barcode scan against an order item
type ScanBarcodeCommand struct {
	OrderID     uuid.UUID
	OrderItemID uuid.UUID
	Barcode     string
	ActorID     uuid.UUID
}

// ScanResult reports the outcome of a successful scan
type ScanResult struct {
	OrderID     uuid.UUID                       `json:"order_id"`
	OrderItemID uuid.UUID                       `json:"order_item_id"`
	BarcodeID   uuid.UUID                       `json:"barcode_id"`
	Barcode     string                          `json:"barcode"`
	BatchID     uuid.UUID                       `json:"batch_id"`
	OrderStatus fulfillment.OrderStatus         `json:"order_status"`
	Progress    fulfillment.FulfillmentProgress `json:"fulfillment_progress"`
}

// OrderItemDTO is one order line with its scan state
type OrderItemDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	BatchID    *uuid.UUID      `json:"batch_id,omitempty"`
	BarcodeID  *uuid.UUID      `json:"barcode_id,omitempty"`
	ScanStatus string          `json:"scan_status"`
	// AvailableUnits counts scannable units at the assigned store.
	// Populated by the order details query only.
	AvailableUnits *int64 `json:"available_units,omitempty"`
}

// OrderDTO is the order view returned by listing and detail queries
type OrderDTO struct {
	ID          uuid.UUID                       `json:"id"`
	OrderNumber string                          `json:"order_number"`
	CustomerID  uuid.UUID                       `json:"customer_id"`
	StoreID     *uuid.UUID                      `json:"store_id,omitempty"`
	Type        fulfillment.OrderType           `json:"order_type"`
	Status      fulfillment.OrderStatus         `json:"status"`
	TotalAmount decimal.Decimal                 `json:"total_amount"`
	Items       []OrderItemDTO                  `json:"items"`
	Progress    fulfillment.FulfillmentProgress `json:"fulfillment_progress"`
	CreatedAt   time.Time                       `json:"created_at"`
}

// StoreQueueSummary counts a store's orders per fulfillment status
type StoreQueueSummary struct {
	AssignedToStoreCount  int64 `json:"assigned_to_store_count"`
	PickingCount          int64 `json:"picking_count"`
	ReadyForShipmentCount int64 `json:"ready_for_shipment_count"`
}

// AssignedOrdersResult is a store's fulfillment work queue
type AssignedOrdersResult struct {
	Orders     []OrderDTO        `json:"orders"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	Summary    StoreQueueSummary `json:"summary"`
}

// OrderDetailsResult is one order with its fulfillment state
type OrderDetailsResult struct {
	Order    OrderDTO                        `json:"order"`
	Progress fulfillment.FulfillmentProgress `json:"fulfillment_status"`
	CanShip  bool                            `json:"can_ship"`
}

func toOrderItemDTO(item *fulfillment.OrderItem) OrderItemDTO {
	scanStatus := "pending"
	if item.IsFulfilled() {
		scanStatus = "scanned"
	}
	return OrderItemDTO{
		ID:         item.ID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		UnitPrice:  item.UnitPrice,
		BatchID:    item.BatchID,
		BarcodeID:  item.BarcodeID,
		ScanStatus: scanStatus,
	}
}

func toOrderDTO(order *fulfillment.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(order.Items))
	for i := range order.Items {
		items = append(items, toOrderItemDTO(&order.Items[i]))
	}
	return OrderDTO{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		CustomerID:  order.CustomerID,
		StoreID:     order.StoreID,
		Type:        order.Type,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Items:       items,
		Progress:    order.Progress(),
		CreatedAt:   order.CreatedAt,
	}
}
