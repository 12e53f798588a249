package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hiring-pipeline/internal/background"
	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/internal/scraper/apify"
	"hiring-pipeline/internal/store"
	"hiring-pipeline/pkg/models"

	"github.com/labstack/echo/v4"
)

// ScrapeWebhookHandler receives scrape-completion callbacks from the
// scraping provider. The handler only acknowledges and dispatches: the
// actual processing runs in the background so the provider never waits on
// evaluation or notifications.
func ScrapeWebhookHandler(cfg *config.Config, st store.ApplicationStore, processor *pipeline.Processor, taskManager background.TaskManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.LogWithRequestID(requestID)

		applicationID := c.QueryParam("applicationId")
		if applicationID == "" {
			logger.Warn("Scrape callback missing application id")
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_application_id",
				Message:   "applicationId query parameter is required",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if _, err := st.GetByID(c.Request().Context(), applicationID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				logger.Warn("Scrape callback for unknown application", map[string]interface{}{
					"application_id": applicationID,
				})
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "unknown_application",
					Message:   "No application matches the correlation token",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			logger.Error("Failed to resolve callback application", map[string]interface{}{
				"application_id": applicationID,
				"error":          err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "lookup_failed",
				Message:   "Failed to resolve application",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		var payload models.ScrapeWebhookPayload
		if err := c.Bind(&payload); err != nil {
			logger.Warn("Failed to parse scrape callback payload", map[string]interface{}{
				"application_id": applicationID,
				"error":          err.Error(),
			})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_payload",
				Message:   "Invalid callback payload",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		eventType := payload.EventType()
		logger.Info("Scrape callback received", map[string]interface{}{
			"application_id": applicationID,
			"event_type":     eventType,
		})

		switch eventType {
		case apify.EventRunFailed:
			if err := processor.HandleScrapeFailure(c.Request().Context(), applicationID); err != nil {
				logger.Error("Failed to record scrape failure", map[string]interface{}{
					"application_id": applicationID,
					"error":          err.Error(),
				})
			}
			return c.JSON(http.StatusOK, models.WebhookAckResponse{
				Received: true,
				Status:   "failure_recorded",
			})

		case apify.EventRunSucceeded:
			err := taskManager.Submit(c.Request().Context(), applicationID, background.TaskTypeProcessCandidate,
				map[string]interface{}{"application_id": applicationID},
				func(taskCtx context.Context) error {
					return processor.ProcessCandidate(taskCtx, applicationID)
				})
			if err != nil {
				logger.Error("Failed to schedule candidate processing", map[string]interface{}{
					"application_id": applicationID,
					"error":          err.Error(),
				})
				return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
					Error:     "processing_unavailable",
					Message:   "Failed to schedule candidate processing",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			return c.JSON(http.StatusOK, models.WebhookAckResponse{
				Received: true,
				Status:   "processing_scheduled",
			})

		default:
			logger.Warn("Ignoring scrape callback with unknown event type", map[string]interface{}{
				"application_id": applicationID,
				"event_type":     eventType,
			})
			return c.JSON(http.StatusOK, models.WebhookAckResponse{
				Received: true,
				Status:   "ignored",
			})
		}
	}
}
