package catalog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// BarcodeStatus represents where a physical unit currently is in its lifecycle
type BarcodeStatus string

const (
	BarcodeStatusInShop     BarcodeStatus = "in_shop"
	BarcodeStatusInShipment BarcodeStatus = "in_shipment"
	BarcodeStatusSold       BarcodeStatus = "sold"
	BarcodeStatusReturned   BarcodeStatus = "returned"
)

// IsValid checks if the status is a valid BarcodeStatus
func (s BarcodeStatus) IsValid() bool {
	switch s {
	case BarcodeStatusInShop, BarcodeStatusInShipment, BarcodeStatusSold, BarcodeStatusReturned:
		return true
	}
	return false
}

// String returns the string representation of BarcodeStatus
func (s BarcodeStatus) String() string {
	return string(s)
}

// LocationEvent is one entry in a barcode's audit trail. Every status
// change appends one, so the unit's history is reconstructible.
type LocationEvent struct {
	Status      BarcodeStatus `json:"status"`
	OrderID     *uuid.UUID    `json:"order_id,omitempty"`
	OrderNumber string        `json:"order_number,omitempty"`
	ActorID     uuid.UUID     `json:"actor_id"`
	OccurredAt  time.Time     `json:"occurred_at"`
}

// ProductBarcode represents an individually trackable physical unit of a
// product. A barcode belongs to exactly one stock batch and is bound to at
// most one order item at a time.
type ProductBarcode struct {
	shared.BaseAggregateRoot
	Barcode        string
	ProductID      uuid.UUID
	BatchID        uuid.UUID
	CurrentStoreID uuid.UUID
	Status         BarcodeStatus
	History        []LocationEvent
}

// NewProductBarcode creates a new barcode for a physical unit received into a store
func NewProductBarcode(barcode string, productID, batchID, storeID uuid.UUID) (*ProductBarcode, error) {
	if barcode == "" {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode value cannot be empty")
	}
	if productID == uuid.Nil || batchID == uuid.Nil || storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BARCODE", "Barcode must reference a product, batch and store")
	}

	return &ProductBarcode{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Barcode:           barcode,
		ProductID:         productID,
		BatchID:           batchID,
		CurrentStoreID:    storeID,
		Status:            BarcodeStatusInShop,
		History:           make([]LocationEvent, 0),
	}, nil
}

// IsScannable returns true if the unit is on a shop floor and available for picking
func (b *ProductBarcode) IsScannable(storeID uuid.UUID) bool {
	return b.Status == BarcodeStatusInShop && b.CurrentStoreID == storeID
}

// MarkInShipment transitions the unit to in_shipment after a fulfillment
// scan bound it to an order item. The order reference and actor are
// appended to the audit trail.
func (b *ProductBarcode) MarkInShipment(orderID uuid.UUID, orderNumber string, actorID uuid.UUID, at time.Time) error {
	if b.Status != BarcodeStatusInShop {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Barcode %s cannot be shipped from status %s", b.Barcode, b.Status))
	}

	b.Status = BarcodeStatusInShipment
	b.History = append(b.History, LocationEvent{
		Status:      BarcodeStatusInShipment,
		OrderID:     &orderID,
		OrderNumber: orderNumber,
		ActorID:     actorID,
		OccurredAt:  at,
	})
	b.UpdatedAt = at

	return nil
}

// Return puts a unit back on the shop floor of the given store
func (b *ProductBarcode) Return(storeID, actorID uuid.UUID) error {
	if b.Status != BarcodeStatusInShipment && b.Status != BarcodeStatusSold {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Barcode %s cannot be returned from status %s", b.Barcode, b.Status))
	}

	now := time.Now()
	b.Status = BarcodeStatusInShop
	b.CurrentStoreID = storeID
	b.History = append(b.History, LocationEvent{
		Status:     BarcodeStatusInShop,
		ActorID:    actorID,
		OccurredAt: now,
	})
	b.UpdatedAt = now

	return nil
}
