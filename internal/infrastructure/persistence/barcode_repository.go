package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormBarcodeRepository implements catalog.BarcodeRepository using GORM
type GormBarcodeRepository struct {
	db *gorm.DB
}

// NewGormBarcodeRepository creates a new GormBarcodeRepository
func NewGormBarcodeRepository(db *gorm.DB) *GormBarcodeRepository {
	return &GormBarcodeRepository{db: db}
}

// FindByID finds a barcode by its ID
func (r *GormBarcodeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductBarcode, error) {
	var model models.ProductBarcodeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindScannable finds a barcode by value that is in_shop at the given store.
// Returns shared.ErrBarcodeNotFound when no such unit exists, whether the
// value is unknown, the unit is elsewhere, or it has already been picked.
func (r *GormBarcodeRepository) FindScannable(ctx context.Context, barcode string, storeID uuid.UUID) (*catalog.ProductBarcode, error) {
	var model models.ProductBarcodeModel
	if err := r.db.WithContext(ctx).
		Where("barcode = ? AND current_store_id = ? AND status = ?",
			barcode, storeID, catalog.BarcodeStatusInShop.String()).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrBarcodeNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// CountScannableByProduct counts in_shop units of a product at a store
func (r *GormBarcodeRepository) CountScannableByProduct(ctx context.Context, productID, storeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductBarcodeModel{}).
		Where("product_id = ? AND current_store_id = ? AND status = ?",
			productID, storeID, catalog.BarcodeStatusInShop.String()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a barcode
func (r *GormBarcodeRepository) Save(ctx context.Context, b *catalog.ProductBarcode) error {
	model, err := models.ProductBarcodeModelFromDomain(b)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. The update only applies when
// the stored version matches; zero rows affected means a concurrent writer
// got there first.
func (r *GormBarcodeRepository) SaveWithLock(ctx context.Context, b *catalog.ProductBarcode) error {
	model, err := models.ProductBarcodeModelFromDomain(b)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.ProductBarcodeModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]interface{}{
			"current_store_id": model.CurrentStoreID,
			"status":           model.Status,
			"history":          model.History,
			"version":          b.Version + 1,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	b.IncrementVersion()
	return nil
}

// Ensure GormBarcodeRepository implements catalog.BarcodeRepository
var _ catalog.BarcodeRepository = (*GormBarcodeRepository)(nil)
