package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	auditapp "github.com/phf/backend/internal/application/audit"
	catalogapp "github.com/phf/backend/internal/application/catalog"
	inventoryapp "github.com/phf/backend/internal/application/inventory"
	partnerapp "github.com/phf/backend/internal/application/partner"
	procurementapp "github.com/phf/backend/internal/application/procurement"
	salesapp "github.com/phf/backend/internal/application/sales"
	"github.com/phf/backend/internal/domain/procurement"
	"github.com/phf/backend/internal/infrastructure/cache"
	"github.com/phf/backend/internal/infrastructure/config"
	"github.com/phf/backend/internal/infrastructure/event"
	"github.com/phf/backend/internal/infrastructure/logger"
	"github.com/phf/backend/internal/infrastructure/persistence"
	"github.com/phf/backend/internal/interfaces/http/handler"
	"github.com/phf/backend/internal/interfaces/http/middleware"
	"github.com/phf/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic("Invalid configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting pharmacy backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Failed to migrate database schema", zap.Error(err))
	}
	log.Info("Database connected")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	orderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	auditRepo := persistence.NewGormAuditRepository(db.DB)

	// Transaction scopes
	inventoryTx := persistence.NewGormInventoryTransactionScope(db.DB)
	procurementTx := persistence.NewGormProcurementTransactionScope(db.DB)
	salesTx := persistence.NewGormSalesTransactionScope(db.DB)

	// Receipt number sequence, Redis backed with an in-process fallback
	receipts := cache.NewReceiptSequence(cfg.Redis, log)
	defer func() {
		if closer, ok := receipts.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				log.Error("Error closing receipt sequence", zap.Error(err))
			}
		}
	}()

	receivingPolicy := procurement.ReceivingPolicy{
		MarkupPercent: decimal.NewFromInt(int64(cfg.Receiving.MarkupPercent)),
		ShelfLifeDays: cfg.Receiving.ShelfLifeDays,
	}
	if err := receivingPolicy.Validate(); err != nil {
		log.Fatal("Invalid receiving policy", zap.Error(err))
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	ledgerService := inventoryapp.NewLedgerService(inventoryTx, batchRepo, adjustmentRepo, productRepo)
	alertService := inventoryapp.NewAlertService(productRepo, batchRepo)
	alertService.SetWindows(cfg.Alerts.DefaultExpiryWindowDays, cfg.Alerts.CriticalExpiryDays)
	orderService := procurementapp.NewPurchaseOrderService(procurementTx, orderRepo, supplierRepo, productRepo, receivingPolicy)
	saleService := salesapp.NewSaleService(salesTx, saleRepo, batchRepo, productRepo, receipts)
	auditService := auditapp.NewAuditService(auditRepo)

	// Event bus and handlers
	eventBus := event.NewInMemoryEventBus(log)

	auditRecorder := auditapp.NewRecorder(auditRepo, log)
	eventBus.Subscribe(auditRecorder)

	lowStockHandler := inventoryapp.NewStockBelowThresholdHandler(log)
	eventBus.Subscribe(lowStockHandler)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	productService.SetEventPublisher(eventBus)
	ledgerService.SetEventPublisher(eventBus)
	orderService.SetEventPublisher(eventBus)
	saleService.SetEventPublisher(eventBus)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	r := router.New(engine, "/api/v1", log)
	r.Register(
		handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
		handler.NewProductHandler(productService),
		handler.NewSupplierHandler(supplierService),
		handler.NewInventoryHandler(ledgerService, alertService),
		handler.NewPurchaseOrderHandler(orderService),
		handler.NewSaleHandler(saleService),
		handler.NewPOSHandler(saleService),
		handler.NewAuditHandler(auditService),
	)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	log.Info("Server stopped")
}
