package routes

import (
	"net/http"

	"hiring-pipeline/internal/api/handlers"
	"hiring-pipeline/internal/api/middleware"
	"hiring-pipeline/internal/background"
	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/internal/store"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, st store.ApplicationStore, processor *pipeline.Processor, taskManager background.TaskManager) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(taskManager))
		health.GET("/live", handlers.LivenessHandler)
		health.GET("/tasks", handlers.TasksHandler(taskManager))
	}

	// Status route
	e.GET("/status", handlers.StatusHandler)

	// Application intake routes; submissions are rate limited per IP
	apply := e.Group("/apply")
	{
		apply.POST("", handlers.ApplyHandler(cfg, processor), middleware.RateLimit(cfg))
		apply.GET("/roles", handlers.RolesHandler())
		apply.GET("/:id", handlers.ApplicationStatusHandler(st))
	}

	// Team-facing listing
	e.GET("/applications", handlers.ListApplicationsHandler(st))

	// Scrape-completion callback from the scraping provider
	e.POST("/webhook/scraper", handlers.ScrapeWebhookHandler(cfg, st, processor, taskManager))

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Voidr Hiring Pipeline",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
