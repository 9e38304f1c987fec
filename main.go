// File: chairside/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chairside/config"
	"chairside/cron"
	"chairside/database"
	catalogRepo "chairside/database/repository/catalog"
	clientRepoPkg "chairside/database/repository/client"
	resourceRepoPkg "chairside/database/repository/resource"
	segmentRepoPkg "chairside/database/repository/segment"
	"chairside/handlers"
	"chairside/middleware"
	"chairside/routes"
	"chairside/services/audit"
	"chairside/services/scheduling"
	"chairside/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	segRepo := segmentRepoPkg.NewMongoSegmentRepo()
	cliRepo := clientRepoPkg.NewMongoClientRepo()
	resRepo := resourceRepoPkg.NewMongoResourceRepo()
	catRepo := catalogRepo.NewMongoCatalogRepo()

	// audit queue + worker.
	auditClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer auditClient.Close()
	cron.InitAuditWorker()

	// scheduling engine.
	engine := &scheduling.DefaultSchedulingEngine{
		Segments:  segRepo,
		Clients:   cliRepo,
		Resources: resRepo,
		Catalog:   catRepo,
		Locker:    utils.NewAdvisoryLocker(utils.GetLockClient(), 10*time.Second),
		Audit:     audit.NewAsynqSink(auditClient),
		Chemical:  scheduling.KeywordClassifier{},
	}

	bookingHandler := handlers.NewBookingHandler(engine, utils.GetCacheClient(), logger)
	resourceHandler := handlers.NewResourceHandler(resRepo, engine, utils.GetCacheClient())
	catalogHandler := handlers.NewCatalogHandler(catRepo)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// Booking endpoints.
		GetAvailability:   bookingHandler.GetAvailability,
		CommitBooking:     bookingHandler.CommitBooking,
		GenerateSeries:    bookingHandler.GenerateSeries,
		CancelBooking:     bookingHandler.CancelBooking,
		RescheduleBooking: bookingHandler.RescheduleBooking,
		LockBooking:       bookingHandler.LockBooking,

		// Resource endpoints.
		ListResources: resourceHandler.ListResources,
		GetResource:   resourceHandler.GetResource,
		CreateHold:    resourceHandler.CreateHold,

		// Catalogue endpoints.
		ListServices: catalogHandler.ListServices,
		GetService:   catalogHandler.GetService,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background health snapshot for the /health endpoint.
	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetLockClient()},
		database.MongoClient,
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
