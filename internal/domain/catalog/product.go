package catalog

import (
	"time"

	"github.com/retail/backoffice/internal/domain/shared"
)

// Product represents a sellable product identified by SKU.
// Stock quantities are tracked per store in the inventory context;
// individually trackable physical units live in ProductBarcode.
type Product struct {
	shared.BaseAggregateRoot
	SKU  string
	Name string
}

// NewProduct creates a new product
func NewProduct(sku, name string) (*Product, error) {
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SKU:               sku,
		Name:              name,
	}, nil
}

// Rename updates the product display name
func (p *Product) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.UpdatedAt = time.Now()
	return nil
}
