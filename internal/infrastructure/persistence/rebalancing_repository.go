package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormRebalancingRepository implements rebalancing.Repository using GORM
type GormRebalancingRepository struct {
	db *gorm.DB
}

// NewGormRebalancingRepository creates a new GormRebalancingRepository
func NewGormRebalancingRepository(db *gorm.DB) *GormRebalancingRepository {
	return &GormRebalancingRepository{db: db}
}

// FindByID finds a rebalancing request by its ID
func (r *GormRebalancingRepository) FindByID(ctx context.Context, id uuid.UUID) (*rebalancing.Rebalancing, error) {
	var model models.RebalancingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds rebalancing requests, newest first. Supported filter keys:
// status, product_id, store_id (matches source or destination).
func (r *GormRebalancingRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[rebalancing.Rebalancing], error) {
	query := r.db.WithContext(ctx).Model(&models.RebalancingModel{})

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "store_id":
			query = query.Where("source_store_id = ? OR destination_store_id = ?", value, value)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[rebalancing.Rebalancing]{}, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at"
	}

	var rebalancingModels []models.RebalancingModel
	if err := query.
		Order(orderBy + " " + orderDir).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rebalancingModels).Error; err != nil {
		return shared.Paginated[rebalancing.Rebalancing]{}, err
	}

	items := make([]rebalancing.Rebalancing, len(rebalancingModels))
	for i := range rebalancingModels {
		items[i] = *rebalancingModels[i].ToDomain()
	}

	return shared.NewPaginated(items, total, page, pageSize), nil
}

// FindRecent finds the most recently created requests
func (r *GormRebalancingRepository) FindRecent(ctx context.Context, limit int) ([]rebalancing.Rebalancing, error) {
	if limit < 1 {
		limit = 10
	}

	var rebalancingModels []models.RebalancingModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&rebalancingModels).Error; err != nil {
		return nil, err
	}

	items := make([]rebalancing.Rebalancing, len(rebalancingModels))
	for i := range rebalancingModels {
		items[i] = *rebalancingModels[i].ToDomain()
	}
	return items, nil
}

// CountByStatus counts requests per status
func (r *GormRebalancingRepository) CountByStatus(ctx context.Context) (map[rebalancing.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.RebalancingModel{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[rebalancing.Status]int64, len(rows))
	for _, row := range rows {
		counts[rebalancing.Status(row.Status)] = row.Count
	}
	return counts, nil
}

// Save creates or updates a rebalancing request
func (r *GormRebalancingRepository) Save(ctx context.Context, reb *rebalancing.Rebalancing) error {
	model := models.RebalancingModelFromDomain(reb)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking. The update only applies when
// the stored version matches; zero rows affected means a concurrent writer
// got there first.
func (r *GormRebalancingRepository) SaveWithLock(ctx context.Context, reb *rebalancing.Rebalancing) error {
	model := models.RebalancingModelFromDomain(reb)

	result := r.db.WithContext(ctx).
		Model(&models.RebalancingModel{}).
		Where("id = ? AND version = ?", reb.ID, reb.Version).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"reason":       model.Reason,
			"approved_by":  model.ApprovedBy,
			"approved_at":  model.ApprovedAt,
			"completed_at": model.CompletedAt,
			"dispatch_id":  model.DispatchID,
			"version":      reb.Version + 1,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	reb.IncrementVersion()
	return nil
}

// Ensure GormRebalancingRepository implements rebalancing.Repository
var _ rebalancing.Repository = (*GormRebalancingRepository)(nil)
