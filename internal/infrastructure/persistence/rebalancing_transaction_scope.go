package persistence

import (
	"context"

	apprebalancing "github.com/retail/backoffice/internal/application/rebalancing"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/rebalancing"
	"gorm.io/gorm"
)

// GormRebalancingTransactionScope implements the rebalancing TransactionScope
// using GORM transactions. Approval writes both the rebalancing record and
// its dispatch; the scope makes that all-or-nothing.
type GormRebalancingTransactionScope struct {
	db *gorm.DB
}

// NewGormRebalancingTransactionScope creates a new GormRebalancingTransactionScope
func NewGormRebalancingTransactionScope(db *gorm.DB) *GormRebalancingTransactionScope {
	return &GormRebalancingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormRebalancingTransactionScope) Execute(ctx context.Context, fn func(repos apprebalancing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormRebalancingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormRebalancingRepositories provides access to all rebalancing repositories
// within a transaction.
type gormRebalancingRepositories struct {
	tx *gorm.DB
}

// Rebalancings returns the rebalancing repository scoped to the current transaction.
func (r *gormRebalancingRepositories) Rebalancings() rebalancing.Repository {
	return NewGormRebalancingRepository(r.tx)
}

// Dispatches returns the dispatch repository scoped to the current transaction.
func (r *gormRebalancingRepositories) Dispatches() rebalancing.DispatchRepository {
	return NewGormDispatchRepository(r.tx)
}

// Batches returns the stock batch repository scoped to the current transaction.
func (r *gormRebalancingRepositories) Batches() inventory.StockBatchRepository {
	return NewGormStockBatchRepository(r.tx)
}

// Ensure GormRebalancingTransactionScope implements TransactionScope
var _ apprebalancing.TransactionScope = (*GormRebalancingTransactionScope)(nil)

// Ensure gormRebalancingRepositories implements TransactionalRepositories
var _ apprebalancing.TransactionalRepositories = (*gormRebalancingRepositories)(nil)
