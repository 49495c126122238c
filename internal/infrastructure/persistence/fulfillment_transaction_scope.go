package persistence

import (
	"context"

	appfulfillment "github.com/retail/backoffice/internal/application/fulfillment"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormFulfillmentTransactionScope implements the fulfillment TransactionScope
// using GORM transactions. A barcode scan mutates three aggregates (order,
// barcode, batch); the scope makes that a single all-or-nothing command.
type GormFulfillmentTransactionScope struct {
	db *gorm.DB
}

// NewGormFulfillmentTransactionScope creates a new GormFulfillmentTransactionScope
func NewGormFulfillmentTransactionScope(db *gorm.DB) *GormFulfillmentTransactionScope {
	return &GormFulfillmentTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormFulfillmentTransactionScope) Execute(ctx context.Context, fn func(repos appfulfillment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormFulfillmentRepositories{tx: tx}
		return fn(repos)
	})
}

// gormFulfillmentRepositories provides access to all fulfillment repositories
// within a transaction.
type gormFulfillmentRepositories struct {
	tx *gorm.DB
}

// Orders returns the order repository scoped to the current transaction.
func (r *gormFulfillmentRepositories) Orders() fulfillment.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Barcodes returns the barcode repository scoped to the current transaction.
func (r *gormFulfillmentRepositories) Barcodes() catalog.BarcodeRepository {
	return NewGormBarcodeRepository(r.tx)
}

// Batches returns the stock batch repository scoped to the current transaction.
func (r *gormFulfillmentRepositories) Batches() inventory.StockBatchRepository {
	return NewGormStockBatchRepository(r.tx)
}

// Ensure GormFulfillmentTransactionScope implements TransactionScope
var _ appfulfillment.TransactionScope = (*GormFulfillmentTransactionScope)(nil)

// Ensure gormFulfillmentRepositories implements TransactionalRepositories
var _ appfulfillment.TransactionalRepositories = (*gormFulfillmentRepositories)(nil)
