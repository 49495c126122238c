package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"github.com/retail/backoffice/internal/domain/shared"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormDispatchRepository implements rebalancing.DispatchRepository using GORM
type GormDispatchRepository struct {
	db *gorm.DB
}

// NewGormDispatchRepository creates a new GormDispatchRepository
func NewGormDispatchRepository(db *gorm.DB) *GormDispatchRepository {
	return &GormDispatchRepository{db: db}
}

// FindByID finds a dispatch by its ID
func (r *GormDispatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*rebalancing.Dispatch, error) {
	var model models.DispatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a dispatch
func (r *GormDispatchRepository) Save(ctx context.Context, d *rebalancing.Dispatch) error {
	model := models.DispatchModelFromDomain(d)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormDispatchRepository implements rebalancing.DispatchRepository
var _ rebalancing.DispatchRepository = (*GormDispatchRepository)(nil)
