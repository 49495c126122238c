package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds products by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, p *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error
}

// BarcodeRepository defines the interface for physical unit persistence
type BarcodeRepository interface {
	// FindByID finds a barcode by ID
	FindByID(ctx context.Context, id uuid.UUID) (*ProductBarcode, error)

	// FindScannable finds a barcode by value that is in_shop at the given store.
	// Returns shared.ErrBarcodeNotFound when no such unit exists.
	FindScannable(ctx context.Context, barcode string, storeID uuid.UUID) (*ProductBarcode, error)

	// CountScannableByProduct counts in_shop units of a product at a store
	CountScannableByProduct(ctx context.Context, productID, storeID uuid.UUID) (int64, error)

	// Save creates or updates a barcode
	Save(ctx context.Context, b *ProductBarcode) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, b *ProductBarcode) error
}
