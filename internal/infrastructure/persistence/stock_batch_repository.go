package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStockBatchRepository implements inventory.StockBatchRepository using GORM
type GormStockBatchRepository struct {
	db *gorm.DB
}

// NewGormStockBatchRepository creates a new GormStockBatchRepository
func NewGormStockBatchRepository(db *gorm.DB) *GormStockBatchRepository {
	return &GormStockBatchRepository{db: db}
}

// FindByID finds a stock batch by its ID
func (r *GormStockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockBatch, error) {
	var model models.StockBatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate finds a stock batch by ID taking a row-level lock.
// Only meaningful inside a transaction scope.
func (r *GormStockBatchRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*inventory.StockBatch, error) {
	var model models.StockBatchModel
	if err := lockForUpdate(r.db.WithContext(ctx)).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProductAndStore finds all batches of a product at one store,
// expiry-first so callers draw down the most perishable stock
func (r *GormStockBatchRepository) FindByProductAndStore(ctx context.Context, productID, storeID uuid.UUID) ([]inventory.StockBatch, error) {
	var batchModels []models.StockBatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND store_id = ?", productID, storeID).
		Order("COALESCE(expiry_date, '9999-12-31') ASC, created_at ASC").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(batchModels), nil
}

// FindByStore finds all batches held at one store
func (r *GormStockBatchRepository) FindByStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]inventory.StockBatch, error) {
	var batchModels []models.StockBatchModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.StockBatchModel{}).
			Where("store_id = ?", storeID),
		filter,
	)

	if err := query.Find(&batchModels).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(batchModels), nil
}

// FindAllStocked finds every batch with quantity > 0, across all products
// and stores
func (r *GormStockBatchRepository) FindAllStocked(ctx context.Context) ([]inventory.StockBatch, error) {
	var batchModels []models.StockBatchModel
	if err := r.db.WithContext(ctx).
		Where("quantity > 0").
		Order("product_id ASC, store_id ASC").
		Find(&batchModels).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(batchModels), nil
}

// Save creates or updates a stock batch
func (r *GormStockBatchRepository) Save(ctx context.Context, b *inventory.StockBatch) error {
	model := models.StockBatchModelFromDomain(b)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. The update only applies when
// the stored version matches; zero rows affected means a concurrent writer
// got there first.
func (r *GormStockBatchRepository) SaveWithLock(ctx context.Context, b *inventory.StockBatch) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockBatchModel{}).
		Where("id = ? AND version = ?", b.ID, b.Version).
		Updates(map[string]interface{}{
			"quantity":      b.Quantity,
			"reorder_level": b.ReorderLevel,
			"unit_cost":     b.UnitCost,
			"expiry_date":   b.ExpiryDate,
			"version":       b.Version + 1,
			"updated_at":    b.UpdatedAt,
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

// Delete deletes a stock batch
func (r *GormStockBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.StockBatchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormStockBatchRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("COALESCE(expiry_date, '9999-12-31') ASC, created_at ASC")
	}

	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "has_stock":
			if value == true {
				query = query.Where("quantity > 0")
			}
		case "expired":
			if value == true {
				query = query.Where("expiry_date IS NOT NULL AND expiry_date <= ?", time.Now())
			}
		case "below_reorder_level":
			if value == true {
				query = query.Where("quantity < reorder_level")
			}
		}
	}

	return query
}

func toDomainBatches(batchModels []models.StockBatchModel) []inventory.StockBatch {
	batches := make([]inventory.StockBatch, len(batchModels))
	for i := range batchModels {
		batches[i] = *batchModels[i].ToDomain()
	}
	return batches
}

// Ensure GormStockBatchRepository implements inventory.StockBatchRepository
var _ inventory.StockBatchRepository = (*GormStockBatchRepository)(nil)
