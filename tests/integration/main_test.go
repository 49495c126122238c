// Package integration wires the full HTTP stack against an in-memory
// database: real GORM repositories, real application services, the in-memory
// event bus, and the gin engine with its middleware.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	fulfillmentapp "github.com/retail/backoffice/internal/application/fulfillment"
	rebalancingapp "github.com/retail/backoffice/internal/application/rebalancing"
	"github.com/retail/backoffice/internal/infrastructure/event"
	"github.com/retail/backoffice/internal/infrastructure/persistence"
	"github.com/retail/backoffice/internal/interfaces/http/dto"
	"github.com/retail/backoffice/internal/interfaces/http/handler"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	"github.com/retail/backoffice/internal/interfaces/http/router"
	"github.com/retail/backoffice/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
	events *testutil.RecordingEventHandler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.NewTestDB(t)

	storeRepo := persistence.NewGormStoreRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	barcodeRepo := persistence.NewGormBarcodeRepository(db)
	stockBatchRepo := persistence.NewGormStockBatchRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	rebalancingRepo := persistence.NewGormRebalancingRepository(db)
	dispatchRepo := persistence.NewGormDispatchRepository(db)

	fulfillmentService := fulfillmentapp.NewFulfillmentService(
		persistence.NewGormFulfillmentTransactionScope(db),
		orderRepo, storeRepo, productRepo, barcodeRepo,
	)
	availabilityService := fulfillmentapp.NewAvailabilityService(
		orderRepo, storeRepo, productRepo, stockBatchRepo,
	)
	rebalancingService := rebalancingapp.NewRebalancingService(
		persistence.NewGormRebalancingTransactionScope(db),
		rebalancingRepo, dispatchRepo, stockBatchRepo, productRepo, storeRepo,
	)

	events := testutil.NewRecordingEventHandler()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	bus.Subscribe(events)
	require.NoError(t, bus.Start(context.Background()))
	t.Cleanup(func() { _ = bus.Stop(context.Background()) })

	fulfillmentService.SetEventPublisher(bus)
	rebalancingService.SetEventPublisher(bus)

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.NewRouter(engine, "v1").
		Register(handler.NewFulfillmentHandler(fulfillmentService, availabilityService)).
		Register(handler.NewRebalancingHandler(rebalancingService)).
		Setup()

	return &testApp{engine: engine, db: db, events: events}
}

// do performs a request against the app. A non-nil actorID is sent as the
// X-Actor-ID header.
func (a *testApp) do(t *testing.T, method, path string, body interface{}, actorID *uuid.UUID) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if actorID != nil {
		req.Header.Set(middleware.ActorHeader, actorID.String())
	}

	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// dataMap returns the response data as a JSON object.
func dataMap(t *testing.T, resp dto.Response) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "response data is not an object")
	return data
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) dto.Response {
	t.Helper()
	require.Equal(t, want, w.Code, "unexpected status: %s", w.Body.String())
	return decodeResponse(t, w)
}
