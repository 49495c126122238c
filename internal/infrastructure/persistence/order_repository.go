package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements fulfillment.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order by its ID, items included
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*fulfillment.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDForUpdate finds an order by ID taking a row-level lock on the
// order row. Only meaningful inside a transaction scope; serializes the
// final-completion check between concurrent scans.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*fulfillment.Order, error) {
	var model models.OrderModel
	if err := lockForUpdate(r.db.WithContext(ctx)).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	// Items are loaded after the lock is held; FOR UPDATE cannot span the
	// preload join.
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("created_at ASC").
		Find(&model.Items).Error; err != nil {
		return nil, err
	}

	return model.ToDomain()
}

// FindByOrderNumber finds an order by its order number
func (r *GormOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*fulfillment.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "order_number = ?", orderNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindPendingAssignment finds e-commerce orders awaiting a store, oldest first
func (r *GormOrderRepository) FindPendingAssignment(ctx context.Context, filter shared.Filter) (shared.Paginated[fulfillment.Order], error) {
	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("type = ? AND status = ?",
			fulfillment.OrderTypeEcommerce.String(), fulfillment.OrderStatusPendingAssignment.String())

	return r.paginate(query, filter)
}

// FindByStoreAndStatuses finds a store's orders in any of the given
// statuses, oldest first
func (r *GormOrderRepository) FindByStoreAndStatuses(ctx context.Context, storeID uuid.UUID, statuses []fulfillment.OrderStatus, filter shared.Filter) (shared.Paginated[fulfillment.Order], error) {
	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = s.String()
	}

	query := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("store_id = ? AND status IN ?", storeID, statusStrings)

	return r.paginate(query, filter)
}

// CountByStoreAndStatus counts a store's orders in one status
func (r *GormOrderRepository) CountByStoreAndStatus(ctx context.Context, storeID uuid.UUID, status fulfillment.OrderStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("store_id = ? AND status = ?", storeID, status.String()).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order together with its items
func (r *GormOrderRepository) Save(ctx context.Context, order *fulfillment.Order) error {
	model, err := models.OrderModelFromDomain(order)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(model).Error
}

// SaveWithLock saves with optimistic locking. The order row update only
// applies when the stored version matches; the item rows are upserted
// afterwards under the same transaction.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *fulfillment.Order) error {
	model, err := models.OrderModelFromDomain(order)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND version = ?", order.ID, order.Version).
		Updates(map[string]interface{}{
			"store_id":     model.StoreID,
			"status":       model.Status,
			"total_amount": model.TotalAmount,
			"assignment":   model.Assignment,
			"fulfilled_at": model.FulfilledAt,
			"fulfilled_by": model.FulfilledBy,
			"version":      order.Version + 1,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	if len(model.Items) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&model.Items).Error; err != nil {
			return err
		}
	}

	order.IncrementVersion()
	return nil
}

// paginate counts, applies ordering and pagination, and maps the page
func (r *GormOrderRepository) paginate(query *gorm.DB, filter shared.Filter) (shared.Paginated[fulfillment.Order], error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[fulfillment.Order]{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var orderModels []models.OrderModel
	if err := query.
		Preload("Items").
		Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orderModels).Error; err != nil {
		return shared.Paginated[fulfillment.Order]{}, err
	}

	orders := make([]fulfillment.Order, len(orderModels))
	for i := range orderModels {
		order, err := orderModels[i].ToDomain()
		if err != nil {
			return shared.Paginated[fulfillment.Order]{}, err
		}
		orders[i] = *order
	}

	return shared.NewPaginated(orders, total, page, pageSize), nil
}

// Ensure GormOrderRepository implements fulfillment.OrderRepository
var _ fulfillment.OrderRepository = (*GormOrderRepository)(nil)
