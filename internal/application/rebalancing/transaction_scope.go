package rebalancing

import (
	"context"

	"github.com/retail/backoffice/internal/domain/inventory"
	"github.com/retail/backoffice/internal/domain/rebalancing"
)

// TransactionScope provides transactional access to the repositories a
// rebalancing command touches. Approval writes both the rebalancing record
// and its dispatch; the scope makes that all-or-nothing.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all rebalancing repositories
// within a transaction
type TransactionalRepositories interface {
	// Rebalancings returns the rebalancing repository scoped to the current transaction
	Rebalancings() rebalancing.Repository
	// Dispatches returns the dispatch repository scoped to the current transaction
	Dispatches() rebalancing.DispatchRepository
	// Batches returns the stock batch repository scoped to the current transaction
	Batches() inventory.StockBatchRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing.
type NoOpTransactionScope struct {
	rebalancingRepo rebalancing.Repository
	dispatchRepo    rebalancing.DispatchRepository
	batchRepo       inventory.StockBatchRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	rebalancingRepo rebalancing.Repository,
	dispatchRepo rebalancing.DispatchRepository,
	batchRepo inventory.StockBatchRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		rebalancingRepo: rebalancingRepo,
		dispatchRepo:    dispatchRepo,
		batchRepo:       batchRepo,
	}
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Rebalancings returns the rebalancing repository
func (s *NoOpTransactionScope) Rebalancings() rebalancing.Repository {
	return s.rebalancingRepo
}

// Dispatches returns the dispatch repository
func (s *NoOpTransactionScope) Dispatches() rebalancing.DispatchRepository {
	return s.dispatchRepo
}

// Batches returns the stock batch repository
func (s *NoOpTransactionScope) Batches() inventory.StockBatchRepository {
	return s.batchRepo
}
