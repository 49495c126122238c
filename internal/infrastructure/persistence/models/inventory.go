package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// StockBatchModel is the persistence model for the StockBatch aggregate root.
type StockBatchModel struct {
	AggregateModel
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_batches_product_store"`
	StoreID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_stock_batches_product_store"`
	BatchNumber  string          `gorm:"type:varchar(50)"`
	Quantity     int             `gorm:"not null;default:0"`
	ReorderLevel int             `gorm:"not null;default:0"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ExpiryDate   *time.Time      `gorm:"index"`
}

// TableName returns the table name for GORM
func (StockBatchModel) TableName() string {
	return "stock_batches"
}

// ToDomain converts the persistence model to a domain StockBatch entity.
func (m *StockBatchModel) ToDomain() *inventory.StockBatch {
	return &inventory.StockBatch{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ProductID:         m.ProductID,
		StoreID:           m.StoreID,
		BatchNumber:       m.BatchNumber,
		Quantity:          m.Quantity,
		ReorderLevel:      m.ReorderLevel,
		UnitCost:          m.UnitCost,
		ExpiryDate:        m.ExpiryDate,
	}
}

// FromDomain populates the persistence model from a domain StockBatch entity.
func (m *StockBatchModel) FromDomain(b *inventory.StockBatch) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.ProductID = b.ProductID
	m.StoreID = b.StoreID
	m.BatchNumber = b.BatchNumber
	m.Quantity = b.Quantity
	m.ReorderLevel = b.ReorderLevel
	m.UnitCost = b.UnitCost
	m.ExpiryDate = b.ExpiryDate
}

// StockBatchModelFromDomain creates a new persistence model from a domain StockBatch entity.
func StockBatchModelFromDomain(b *inventory.StockBatch) *StockBatchModel {
	m := &StockBatchModel{}
	m.FromDomain(b)
	return m
}
