// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/koncoweb/petnexus-sub000/internal/api"
	"github.com/koncoweb/petnexus-sub000/internal/cache"
	"github.com/koncoweb/petnexus-sub000/internal/config"
	"github.com/koncoweb/petnexus-sub000/internal/engine"
	"github.com/koncoweb/petnexus-sub000/internal/repository/postgres"
	"github.com/koncoweb/petnexus-sub000/internal/service"
	"github.com/koncoweb/petnexus-sub000/internal/storage"
	"github.com/koncoweb/petnexus-sub000/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	inventoryRepo := postgres.NewInventoryRepository(db)
	promotionRepo := postgres.NewPromotionRepository(db)
	costRepo := postgres.NewCostRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)

	analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, analyses will not be cached")
		analysisCache = cache.NewNoopAnalysisCache()
	}

	var exports storage.ObjectStorage
	if cfg.Storage.Endpoint != "" {
		minioClient, err := storage.NewMinioClient(cfg.Storage)
		if err != nil {
			logger.Log.Warn().Err(err).Msg("Object storage unavailable, order exports disabled")
		} else {
			exports = minioClient
		}
	}

	restockEngine := engine.New(engine.Config{
		DefaultUnitCost:    cfg.Engine.DefaultUnitCost,
		MinRestockQuantity: cfg.Engine.MinRestockQuantity,
		DefaultConfidence:  cfg.Engine.Confidence,
	})

	restockService := service.NewRestockService(
		inventoryRepo,
		promotionRepo,
		costRepo,
		orderRepo,
		supplierRepo,
		analysisCache,
		exports,
		restockEngine,
	)

	router := api.NewRouter(restockService, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// in-flight requests get 5 seconds to finish
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
