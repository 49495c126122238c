package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	fulfillmentapp "github.com/retail/backoffice/internal/application/fulfillment"
	rebalancingapp "github.com/retail/backoffice/internal/application/rebalancing"
	"github.com/retail/backoffice/internal/infrastructure/cache"
	"github.com/retail/backoffice/internal/infrastructure/config"
	"github.com/retail/backoffice/internal/infrastructure/event"
	"github.com/retail/backoffice/internal/infrastructure/logger"
	"github.com/retail/backoffice/internal/infrastructure/persistence"
	"github.com/retail/backoffice/internal/interfaces/http/handler"
	"github.com/retail/backoffice/internal/interfaces/http/middleware"
	"github.com/retail/backoffice/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting back-office server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	barcodeRepo := persistence.NewGormBarcodeRepository(db.DB)
	stockBatchRepo := persistence.NewGormStockBatchRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	rebalancingRepo := persistence.NewGormRebalancingRepository(db.DB)
	dispatchRepo := persistence.NewGormDispatchRepository(db.DB)

	// Transaction scopes
	fulfillmentTxScope := persistence.NewGormFulfillmentTransactionScope(db.DB)
	rebalancingTxScope := persistence.NewGormRebalancingTransactionScope(db.DB)

	// Initialize application services
	fulfillmentService := fulfillmentapp.NewFulfillmentService(
		fulfillmentTxScope, orderRepo, storeRepo, productRepo, barcodeRepo,
	)
	availabilityService := fulfillmentapp.NewAvailabilityService(
		orderRepo, storeRepo, productRepo, stockBatchRepo,
	)
	rebalancingService := rebalancingapp.NewRebalancingService(
		rebalancingTxScope, rebalancingRepo, dispatchRepo, stockBatchRepo, productRepo, storeRepo,
	)

	// Optional Redis-backed availability report cache
	var availabilityCache *cache.RedisAvailabilityCache
	if cfg.Cache.Enabled {
		availabilityCache, err = cache.NewRedisAvailabilityCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cfg.Cache.AvailabilityTTL)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := availabilityCache.Close(); err != nil {
				log.Error("Error closing Redis client", zap.Error(err))
			}
		}()
		availabilityService.SetCache(availabilityCache)
		fulfillmentService.SetAvailabilityCache(availabilityCache)
		log.Info("Availability cache enabled",
			zap.Duration("ttl", cfg.Cache.AvailabilityTTL),
		)
	}

	// Initialize event bus and cross-context handlers
	eventBus := event.NewInMemoryEventBus(log)

	if availabilityCache != nil {
		rebalancingCompletedHandler := fulfillmentapp.NewRebalancingCompletedHandler(
			orderRepo, availabilityCache, log,
		)
		eventBus.Subscribe(rebalancingCompletedHandler)
		log.Info("Event handlers registered",
			zap.Strings("rebalancing_completed_events", rebalancingCompletedHandler.EventTypes()),
		)
	}

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	fulfillmentService.SetEventPublisher(eventBus)
	rebalancingService.SetEventPublisher(eventBus)

	// Initialize HTTP handlers
	fulfillmentHandler := handler.NewFulfillmentHandler(fulfillmentService, availabilityService)
	rebalancingHandler := handler.NewRebalancingHandler(rebalancingService)
	healthHandler := handler.NewHealthHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging, CORS
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Register API routes
	router.NewRouter(engine, "v1").
		Register(healthHandler).
		Register(fulfillmentHandler).
		Register(rebalancingHandler).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal, then drain in-flight requests
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
