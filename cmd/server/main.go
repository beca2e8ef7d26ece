package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/config"
	"storefront/internal/api"
	"storefront/internal/broker"
	"storefront/internal/kv"
	"storefront/internal/models"
	"storefront/internal/service"
	"storefront/internal/store"
	"storefront/internal/util"
	"storefront/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting storefront service")

	tp, err := util.InitTracer("storefront", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	catalog, err := store.NewCatalog(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to catalog database: %v", err)
	}
	defer catalog.Close()
	log.Println("Catalog database connected")

	kvStore, err := kv.NewRedisStore(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer kvStore.Close()
	log.Println("Key-value store connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicStore)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	settingsService := service.NewSettingsService(kvStore, models.StoreSettings{
		FreeShippingThreshold: cfg.Store.FreeShippingThreshold,
		ShippingCost:          cfg.Store.ShippingCost,
		ContactEmail:          cfg.Store.ContactEmail,
		ContactPhone:          cfg.Store.ContactPhone,
	})
	cartService := service.NewCartService(kvStore, catalog, settingsService)
	adminAuth := service.NewAdminAuthService(kvStore, models.AdminUser{
		ID:    "admin",
		Name:  cfg.Store.AdminName,
		Email: cfg.Store.AdminEmail,
	}, cfg.Store.AdminPassword, cfg.Store.AuthLatency)
	customerAuth := service.NewCustomerAuthService(kvStore, cfg.Store.AuthLatency)
	wishlistService := service.NewWishlistService(kvStore)
	subscriptionService := service.NewSubscriptionService(kvStore)
	notificationService := service.NewNotificationService(kvStore, catalog, subscriptionService, settingsService)
	orderService := service.NewOrderService(kvStore, cartService, eventPublisher)
	inventoryService := service.NewInventoryService(catalog, eventPublisher)
	paymentService := service.NewPaymentService(cfg.Payments.Sandbox, cfg.Payments.WidgetURL, cfg.Payments.SandboxWidgetURL)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	notifierConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicStore, cfg.Kafka.NotifierGroup)
	notificationWorker := worker.NewNotificationWorker(notifierConsumer, orderService, notificationService)
	go func() {
		if err := notificationWorker.Start(workerCtx); err != nil {
			log.Printf("Notification worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	handler := api.NewHandler(
		catalog,
		cartService,
		adminAuth,
		customerAuth,
		wishlistService,
		subscriptionService,
		orderService,
		inventoryService,
		paymentService,
		settingsService,
		notificationService,
	)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	notificationWorker.Stop()

	log.Println("Server exited")
}
