package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/gearshop/backend/internal/application/catalog"
	orderapp "github.com/gearshop/backend/internal/application/order"
	promotionapp "github.com/gearshop/backend/internal/application/promotion"
	"github.com/gearshop/backend/internal/domain/order"
	"github.com/gearshop/backend/internal/domain/shared/valueobject"
	"github.com/gearshop/backend/internal/infrastructure/cache"
	"github.com/gearshop/backend/internal/infrastructure/config"
	"github.com/gearshop/backend/internal/infrastructure/event"
	"github.com/gearshop/backend/internal/infrastructure/logger"
	"github.com/gearshop/backend/internal/infrastructure/messaging"
	paymentgw "github.com/gearshop/backend/internal/infrastructure/payment"
	"github.com/gearshop/backend/internal/infrastructure/persistence"
	"github.com/gearshop/backend/internal/infrastructure/scheduler"
	"github.com/gearshop/backend/internal/interfaces/http/handler"
	"github.com/gearshop/backend/internal/interfaces/http/middleware"
	"github.com/gearshop/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
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
		_ = log.Sync()
	}()

	log.Info("Starting Gearshop Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	couponRepo := persistence.NewGormCouponRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	shippingRepo := persistence.NewGormShippingMethodRepository(db.DB)
	stockReservation := persistence.NewGormStockReservation(db.DB)

	// Initialize event bus and subscribe the Kafka notifier if enabled
	eventBus := event.NewInMemoryEventBus(log)
	if cfg.Kafka.Enabled {
		notifier := messaging.NewKafkaOrderNotifier(cfg.Kafka, log)
		eventBus.Subscribe(notifier)
		defer func() {
			if err := notifier.Close(); err != nil {
				log.Error("Error closing Kafka notifier", zap.Error(err))
			}
		}()
		log.Info("Kafka order notifications enabled",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
		)
	}

	// Idempotency store for payment callbacks: Redis with an optional
	// in-memory fallback
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if closer, ok := idempotencyStore.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				log.Error("Error closing idempotency store", zap.Error(err))
			}
		}
	}()

	// Payment gateway
	gateway, err := paymentgw.NewZarinpalAdapter(cfg.Payment)
	if err != nil {
		log.Fatal("Failed to create payment gateway", zap.Error(err))
	}

	// Pricing engine with the configured fixed handling fee
	handlingFee, err := valueobject.NewMoneyFromString(cfg.Pricing.HandlingFee)
	if err != nil {
		log.Fatal("Invalid handling fee", zap.String("value", cfg.Pricing.HandlingFee), zap.Error(err))
	}
	pricingEngine := order.NewPricingEngine(
		persistence.NewPricingCatalogReader(variantRepo),
		discountRepo,
		couponRepo,
		persistence.NewPricingShippingResolver(shippingRepo),
		handlingFee,
	)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, variantRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	discountService := catalogapp.NewDiscountService(discountRepo, variantRepo)
	couponService := promotionapp.NewCouponService(couponRepo)
	checkoutService := orderapp.NewCheckoutService(orderapp.CheckoutServiceConfig{
		Pricing:           pricingEngine,
		Orders:            orderRepo,
		Stock:             stockReservation,
		Gateway:           gateway,
		Events:            eventBus,
		Logger:            log,
		ReservationWindow: cfg.Reservation.Window,
		CallbackURL:       cfg.Payment.CallbackURL,
	})
	paymentService := orderapp.NewPaymentService(orderapp.PaymentServiceConfig{
		Orders:         orderRepo,
		Coupons:        couponRepo,
		Gateway:        gateway,
		Idempotency:    idempotencyStore,
		Events:         eventBus,
		Logger:         log,
		IdempotencyTTL: cfg.Payment.IdempotencyTTL,
	})
	orderService := orderapp.NewOrderService(orderRepo, shippingRepo, stockReservation, couponRepo, eventBus, log)

	// Background sweeper releasing expired stock reservations
	if cfg.Reservation.SweepEnabled {
		reservationService := orderapp.NewReservationService(orderRepo, stockReservation, log)
		sweeper := scheduler.NewReservationSweeper(scheduler.SweeperConfig{
			Interval:  cfg.Reservation.SweepInterval,
			BatchSize: cfg.Reservation.SweepBatch,
		}, reservationService, log)
		if err := sweeper.Start(context.Background()); err != nil {
			log.Fatal("Failed to start reservation sweeper", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := sweeper.Stop(stopCtx); err != nil {
				log.Error("Error stopping reservation sweeper", zap.Error(err))
			}
		}()
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging can
	// tag their output with it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}

	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db))

	// Setup API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewProductHandler(productService, discountService)).
		Register(handler.NewCategoryHandler(categoryService)).
		Register(handler.NewCouponHandler(couponService)).
		Register(handler.NewOrderHandler(checkoutService, orderService, paymentService)).
		Register(handler.NewSystemHandler())
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
