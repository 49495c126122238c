package models

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	SKU  string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(200);not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SKU:               m.SKU,
		Name:              m.Name,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.SKU = p.SKU
	m.Name = p.Name
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductBarcodeModel is the persistence model for the ProductBarcode
// aggregate root. The location history is stored as a JSON document.
type ProductBarcodeModel struct {
	AggregateModel
	Barcode        string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index"`
	BatchID        uuid.UUID `gorm:"type:uuid;not null;index"`
	CurrentStoreID uuid.UUID `gorm:"type:uuid;not null;index:idx_barcodes_store_status"`
	Status         string    `gorm:"type:varchar(20);not null;index:idx_barcodes_store_status"`
	History        string    `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ProductBarcodeModel) TableName() string {
	return "product_barcodes"
}

// ToDomain converts the persistence model to a domain ProductBarcode entity.
func (m *ProductBarcodeModel) ToDomain() (*catalog.ProductBarcode, error) {
	history := make([]catalog.LocationEvent, 0)
	if m.History != "" {
		if err := json.Unmarshal([]byte(m.History), &history); err != nil {
			return nil, fmt.Errorf("failed to decode barcode history: %w", err)
		}
	}

	return &catalog.ProductBarcode{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Barcode:           m.Barcode,
		ProductID:         m.ProductID,
		BatchID:           m.BatchID,
		CurrentStoreID:    m.CurrentStoreID,
		Status:            catalog.BarcodeStatus(m.Status),
		History:           history,
	}, nil
}

// FromDomain populates the persistence model from a domain ProductBarcode entity.
func (m *ProductBarcodeModel) FromDomain(b *catalog.ProductBarcode) error {
	history, err := json.Marshal(b.History)
	if err != nil {
		return fmt.Errorf("failed to encode barcode history: %w", err)
	}

	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Barcode = b.Barcode
	m.ProductID = b.ProductID
	m.BatchID = b.BatchID
	m.CurrentStoreID = b.CurrentStoreID
	m.Status = b.Status.String()
	m.History = string(history)
	return nil
}

// ProductBarcodeModelFromDomain creates a new persistence model from a domain ProductBarcode entity.
func ProductBarcodeModelFromDomain(b *catalog.ProductBarcode) (*ProductBarcodeModel, error) {
	m := &ProductBarcodeModel{}
	if err := m.FromDomain(b); err != nil {
		return nil, err
	}
	return m, nil
}
