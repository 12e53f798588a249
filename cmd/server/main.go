package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hiring-pipeline/internal/api/routes"
	"hiring-pipeline/internal/background"
	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/notify"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/internal/scraper/apify"
	"hiring-pipeline/internal/screener"
	"hiring-pipeline/internal/store"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Voidr Hiring Pipeline")

	// Connect to MongoDB
	applicationStore, err := store.NewMongoStore(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", map[string]interface{}{"error": err.Error()})
	}
	defer applicationStore.Close(context.Background())

	// Initialize background task manager
	taskManager := background.NewTaskManager(cfg)
	ctx := context.Background()
	if err := taskManager.Start(ctx); err != nil {
		logger.Fatal("Failed to start task manager", map[string]interface{}{"error": err.Error()})
	}

	// Wire the workflow processor
	processor := pipeline.NewProcessor(
		cfg,
		applicationStore,
		apify.NewClient(cfg),
		screener.NewClaudeScreener(cfg),
		notify.NewEmailClient(cfg),
		notify.NewChatClient(cfg),
	)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, applicationStore, processor, taskManager)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Stop task manager first so in-flight candidate processing can finish
		logger.Info("Stopping background task manager...")
		if err := taskManager.Stop(shutdownCtx); err != nil {
			logger.Error("Error stopping task manager", map[string]interface{}{"error": err.Error()})
		}

		// Shutdown Echo server
		logger.Info("Stopping HTTP server...")
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{"error": err.Error()})
	}
}
