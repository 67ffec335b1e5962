package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pcabrera/inmo/api/internal/config"
	"github.com/pcabrera/inmo/api/internal/handlers"
	"github.com/pcabrera/inmo/api/internal/logger"
	"github.com/pcabrera/inmo/api/internal/metrics"
	"github.com/pcabrera/inmo/api/internal/middleware"
	"github.com/pcabrera/inmo/api/internal/services"
	"github.com/pcabrera/inmo/api/internal/store"
	"github.com/pcabrera/inmo/api/internal/syncsim"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting inmo API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"backend":     cfg.Store.Backend,
	})

	// Open the document storage backend and wrap it in the store
	ctx := context.Background()
	backend, err := store.Open(ctx, cfg.Store)
	if err != nil {
		log.Fatal("Failed to open store backend", err, map[string]interface{}{
			"backend": cfg.Store.Backend,
		})
	}
	st := store.New(backend, log)
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("Failed to close store backend", err, nil)
		}
	}()

	log.Info("Store backend ready", map[string]interface{}{
		"backend": cfg.Store.Backend,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS -> Session -> Metrics
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))
	router.Use(middleware.Session())
	router.Use(metrics.Middleware())

	// Register health check and metrics routes
	healthHandler := handlers.NewHealthHandler(st, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/info", healthHandler.Info)
	router.GET("/metrics", metrics.Handler())

	// Initialize service and handler layers
	api := &handlers.API{
		Portfolio:   handlers.NewPortfolioHandler(services.NewPortfolioService(st, log)),
		Collections: handlers.NewCollectionHandler(services.NewCollectionService(st, log)),
		Leads:       handlers.NewLeadHandler(services.NewLeadService(st, log)),
		Account:     handlers.NewAccountHandler(services.NewAccountService(st, log)),
		Analytics:   handlers.NewAnalyticsHandler(services.NewAnalyticsService(st, log)),
		Valuations:  handlers.NewValuationHandler(services.NewValuationService(st, log)),
		Geo:         handlers.NewGeoHandler(services.NewGeoService(st, log)),
		Sync:        handlers.NewSyncHandler(services.NewSyncService(st, log)),
	}
	api.Register(router)

	// Start the sync simulator when enabled
	simCtx, stopSim := context.WithCancel(ctx)
	defer stopSim()
	if cfg.Sync.Simulate {
		sim := syncsim.New(st, log, cfg.Sync.CompleteAfter, cfg.Sync.Tick)
		go sim.Run(simCtx)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)
	stopSim()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
