package handlers

import (
	"net/http"
	"time"

	"hiring-pipeline/internal/background"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/pkg/models"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logger := logging.GetGlobalLogger()
	logger.Debug("Health check requested", map[string]interface{}{"request_id": requestIDFrom(c)})

	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler handles readiness probe requests
func ReadinessHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks := map[string]string{
			"api":   "ok",
			"tasks": "ok",
		}
		status := "ready"
		code := http.StatusOK

		if !taskManager.IsHealthy() {
			checks["tasks"] = "unavailable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	})
}

// TasksHandler reports recorded background task results for monitoring
func TasksHandler(taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := taskManager.ListTasks(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "tasks_unavailable",
				Message:   "Failed to list background tasks",
				RequestID: requestIDFrom(c),
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"healthy": taskManager.IsHealthy(),
			"count":   len(tasks),
			"tasks":   tasks,
		})
	}
}

// StatusHandler provides detailed service status
func StatusHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "operational",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api":       "operational",
			"pipeline":  "operational",
			"screening": "operational",
		},
	}

	return c.JSON(http.StatusOK, response)
}
