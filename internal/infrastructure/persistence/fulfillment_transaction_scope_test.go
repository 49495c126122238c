package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	appfulfillment "github.com/retail/backoffice/internal/application/fulfillment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormFulfillmentTransactionScope(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormFulfillmentTransactionScope(db)
		batch := newTestBatch(t, uuid.New(), uuid.New(), 10, nil)

		err := scope.Execute(ctx, func(repos appfulfillment.TransactionalRepositories) error {
			return repos.Batches().Save(ctx, batch)
		})
		require.NoError(t, err)

		found, err := NewGormStockBatchRepository(db).FindByID(ctx, batch.ID)
		require.NoError(t, err)
		assert.Equal(t, 10, found.Quantity)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db := newTestDB(t)
		scope := NewGormFulfillmentTransactionScope(db)
		batch := newTestBatch(t, uuid.New(), uuid.New(), 10, nil)

		boom := errors.New("boom")
		err := scope.Execute(ctx, func(repos appfulfillment.TransactionalRepositories) error {
			if err := repos.Batches().Save(ctx, batch); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		_, err = NewGormStockBatchRepository(db).FindByID(ctx, batch.ID)
		assert.Error(t, err)
	})
}
