package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/store"
	"github.com/retail/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory SQLite database with the full schema.
// The pool is pinned to one connection so every query sees the same
// in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
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

func newTestStore(t *testing.T, name string, isWarehouse, isOnline bool) *store.Store {
	t.Helper()
	st, err := store.NewStore(name, "1 Main St", isWarehouse, isOnline)
	require.NoError(t, err)
	return st
}

func newTestProduct(t *testing.T, sku, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(sku, name)
	require.NoError(t, err)
	return p
}

func newTestBatch(t *testing.T, productID, storeID uuid.UUID, quantity int, expiry *time.Time) *inventory.StockBatch {
	t.Helper()
	b, err := inventory.NewStockBatch(productID, storeID, "B-001", quantity, 5, decimal.NewFromInt(10), expiry)
	require.NoError(t, err)
	return b
}

func newTestOrder(t *testing.T, orderNumber string, orderType fulfillment.OrderType) *fulfillment.Order {
	t.Helper()
	o, err := fulfillment.NewOrder(orderNumber, uuid.New(), orderType)
	require.NoError(t, err)
	return o
}
