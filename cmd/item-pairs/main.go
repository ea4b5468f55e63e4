package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"item-pairs/internal/api"
	"item-pairs/internal/api/handlers"
	"item-pairs/internal/repository"
	"item-pairs/internal/service"
	"item-pairs/internal/similarity"
	"item-pairs/pkg/config"
	"item-pairs/pkg/logger"

	"go.uber.org/zap"
)

// @title Item Pairs API
// @version 1.0
// @description Detects similar marketplace item pairs and keeps one judgment per pair

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting item pairs service", zap.String("store_backend", cfg.Store.Backend))

	ctx := context.Background()
	store, closeStore, err := repository.OpenStore(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to open pair store", zap.Error(err))
	}
	defer closeStore()

	params := similarity.DefaultTrainParams()
	if cfg.Model.ParamsPath != "" {
		if params, err = similarity.LoadTrainParams(cfg.Model.ParamsPath); err != nil {
			appLogger.Fatal("Failed to load training parameters", zap.Error(err))
		}
	}

	// Model lifecycle
	modelRepo := repository.NewModelFileRepository(cfg.Model.Path, appLogger.Named("models"))
	detector := similarity.NewDetector(appLogger.Named("similarity"))
	trainingService := service.NewTrainingService(detector, modelRepo, params, cfg.Model.Bootstrap, appLogger.Named("training"))
	if err := trainingService.Bootstrap(ctx); err != nil {
		appLogger.Error("Model bootstrap failed, using fallback estimator", zap.Error(err))
	}

	pairService := service.NewPairService(store, detector, cfg.Reconcile.MaxAttempts, appLogger.Named("pairs"))

	// Initialize handlers
	app := api.SetupRouter(api.RouterConfig{
		Pair:         handlers.NewPairHandler(pairService, appLogger),
		ML:           handlers.NewMLHandler(trainingService, modelRepo.Path(), appLogger),
		Health:       handlers.NewHealthHandler(trainingService, cfg.Store.Backend),
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// SIGHUP reloads the model artifact; an unusable file drops to the fallback.
	reload := make(chan os.Signal, 1)
	signal.Notify(reload, syscall.SIGHUP)
	go func() {
		for range reload {
			appLogger.Info("Reloading similarity model", zap.String("path", modelRepo.Path()))
			if err := trainingService.Bootstrap(ctx); err != nil {
				appLogger.Error("Model reload failed", zap.Error(err))
			}
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	signal.Stop(reload)

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
