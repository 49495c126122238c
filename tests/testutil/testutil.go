// Package testutil provides shared fixtures for integration tests: an
// in-memory database with the full schema and seed helpers for every
// aggregate.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/store"
	"github.com/retail/backoffice/internal/infrastructure/persistence"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.StoreModel{},
		&models.ProductModel{},
		&models.ProductBarcodeModel{},
		&models.StockBatchModel{},
		&models.OrderModel{},
		&models.OrderItemModel{},
		&models.RebalancingModel{},
		&models.DispatchModel{},
	))

	return db
}

// SeedStore persists a new store. Online stores are eligible for
// e-commerce order assignment.
func SeedStore(t *testing.T, db *gorm.DB, name string, isOnline bool) *store.Store {
	t.Helper()
	st, err := store.NewStore(name, "1 Main St", false, isOnline)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormStoreRepository(db).Save(context.Background(), st))
	return st
}

// SeedProduct persists a new product.
func SeedProduct(t *testing.T, db *gorm.DB, sku, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, name)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

// SeedBatch persists a stock batch for a product at a store.
func SeedBatch(t *testing.T, db *gorm.DB, productID, storeID uuid.UUID, quantity, reorderLevel int) *inventory.StockBatch {
	t.Helper()
	b, err := inventory.NewStockBatch(
		productID, storeID, "BATCH-"+uuid.NewString()[:8],
		quantity, reorderLevel, decimal.NewFromInt(10), nil,
	)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormStockBatchRepository(db).Save(context.Background(), b))
	return b
}

// SeedExpiredBatch persists a batch whose expiry date is in the past.
func SeedExpiredBatch(t *testing.T, db *gorm.DB, productID, storeID uuid.UUID, quantity int) *inventory.StockBatch {
	t.Helper()
	expired := time.Now().Add(-24 * time.Hour)
	b, err := inventory.NewStockBatch(
		productID, storeID, "BATCH-"+uuid.NewString()[:8],
		quantity, 0, decimal.NewFromInt(10), &expired,
	)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormStockBatchRepository(db).Save(context.Background(), b))
	return b
}

// SeedBarcode persists an in_shop barcode for a product unit.
func SeedBarcode(t *testing.T, db *gorm.DB, value string, productID, batchID, storeID uuid.UUID) *catalog.ProductBarcode {
	t.Helper()
	bc, err := catalog.NewProductBarcode(value, productID, batchID, storeID)
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormBarcodeRepository(db).Save(context.Background(), bc))
	return bc
}

// SeedPendingOrder persists an e-commerce order awaiting assignment, with
// one line item per product ID.
func SeedPendingOrder(t *testing.T, db *gorm.DB, orderNumber string, productIDs ...uuid.UUID) *fulfillment.Order {
	t.Helper()
	order, err := fulfillment.NewOrder(orderNumber, uuid.New(), fulfillment.OrderTypeEcommerce)
	require.NoError(t, err)
	for _, productID := range productIDs {
		_, err = order.AddItem(productID, 1, decimal.NewFromInt(25))
		require.NoError(t, err)
	}
	order.ClearDomainEvents()
	require.NoError(t, persistence.NewGormOrderRepository(db).Save(context.Background(), order))
	return order
}
