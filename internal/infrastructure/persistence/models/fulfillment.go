package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root.
// The assignment record is stored as a JSON document.
type OrderModel struct {
	AggregateModel
	OrderNumber      string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	StoreID          *uuid.UUID       `gorm:"type:uuid;index:idx_orders_store_status"`
	Type             string           `gorm:"type:varchar(20);not null"`
	Status           string           `gorm:"type:varchar(30);not null;index:idx_orders_store_status"`
	Items            []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	TotalAmount      decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	IsPreorder       bool             `gorm:"not null;default:false"`
	StockAvailableAt *time.Time
	Assignment       string `gorm:"type:jsonb"`
	FulfilledAt      *time.Time
	FulfilledBy      *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() (*fulfillment.Order, error) {
	var assignment *fulfillment.AssignmentRecord
	if m.Assignment != "" {
		assignment = &fulfillment.AssignmentRecord{}
		if err := json.Unmarshal([]byte(m.Assignment), assignment); err != nil {
			return nil, fmt.Errorf("failed to decode order assignment: %w", err)
		}
	}

	order := &fulfillment.Order{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		CustomerID:        m.CustomerID,
		StoreID:           m.StoreID,
		Type:              fulfillment.OrderType(m.Type),
		Status:            fulfillment.OrderStatus(m.Status),
		TotalAmount:       m.TotalAmount,
		IsPreorder:        m.IsPreorder,
		StockAvailableAt:  m.StockAvailableAt,
		Assignment:        assignment,
		FulfilledAt:       m.FulfilledAt,
		FulfilledBy:       m.FulfilledBy,
		Items:             make([]fulfillment.OrderItem, len(m.Items)),
	}
	for i, item := range m.Items {
		order.Items[i] = *item.ToDomain()
	}
	return order, nil
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *fulfillment.Order) error {
	assignment := ""
	if o.Assignment != nil {
		encoded, err := json.Marshal(o.Assignment)
		if err != nil {
			return fmt.Errorf("failed to encode order assignment: %w", err)
		}
		assignment = string(encoded)
	}

	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.StoreID = o.StoreID
	m.Type = o.Type.String()
	m.Status = o.Status.String()
	m.TotalAmount = o.TotalAmount
	m.IsPreorder = o.IsPreorder
	m.StockAvailableAt = o.StockAvailableAt
	m.Assignment = assignment
	m.FulfilledAt = o.FulfilledAt
	m.FulfilledBy = o.FulfilledBy
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
	return nil
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *fulfillment.Order) (*OrderModel, error) {
	m := &OrderModel{}
	if err := m.FromDomain(o); err != nil {
		return nil, err
	}
	return m, nil
}

// OrderItemModel is the persistence model for the OrderItem entity.
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	BatchID   *uuid.UUID      `gorm:"type:uuid"`
	BarcodeID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedAt time.Time       `gorm:"not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem entity.
func (m *OrderItemModel) ToDomain() *fulfillment.OrderItem {
	return &fulfillment.OrderItem{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
		UnitPrice: m.UnitPrice,
		BatchID:   m.BatchID,
		BarcodeID: m.BarcodeID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderItem entity.
func (m *OrderItemModel) FromDomain(i *fulfillment.OrderItem) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.BatchID = i.BatchID
	m.BarcodeID = i.BarcodeID
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// OrderItemModelFromDomain creates a new persistence model from a domain OrderItem entity.
func OrderItemModelFromDomain(i *fulfillment.OrderItem) *OrderItemModel {
	m := &OrderItemModel{}
	m.FromDomain(i)
	return m
}
