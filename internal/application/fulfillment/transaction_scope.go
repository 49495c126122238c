package fulfillment

import (
	"context"

	"github.com/retail/backoffice/internal/domain/catalog"
	"github.com/retail/backoffice/internal/domain/fulfillment"
	"github.com/retail/backoffice/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories a
// fulfillment command touches. When a function is executed within a
// transaction scope, all repository operations are part of the same
// database transaction and commit or roll back atomically.
//
// A barcode scan mutates three aggregates (order, barcode, batch); the
// scope is what makes that a single all-or-nothing command.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all fulfillment repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Orders returns the order repository scoped to the current transaction
	Orders() fulfillment.OrderRepository
	// Barcodes returns the barcode repository scoped to the current transaction
	Barcodes() catalog.BarcodeRepository
	// Batches returns the stock batch repository scoped to the current transaction
	Batches() inventory.StockBatchRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	orderRepo   fulfillment.OrderRepository
	barcodeRepo catalog.BarcodeRepository
	batchRepo   inventory.StockBatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo fulfillment.OrderRepository,
	barcodeRepo catalog.BarcodeRepository,
	batchRepo inventory.StockBatchRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:   orderRepo,
		barcodeRepo: barcodeRepo,
		batchRepo:   batchRepo,
	}
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() fulfillment.OrderRepository {
	return s.orderRepo
}

// Barcodes returns the barcode repository
func (s *NoOpTransactionScope) Barcodes() catalog.BarcodeRepository {
	return s.barcodeRepo
}

// Batches returns the stock batch repository
func (s *NoOpTransactionScope) Batches() inventory.StockBatchRepository {
	return s.batchRepo
}
