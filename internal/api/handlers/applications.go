package handlers

import (
	"errors"
	"net/http"
	"time"

	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/store"
	"hiring-pipeline/pkg/models"

	"github.com/labstack/echo/v4"
)

const defaultListLimit = 50

// ApplicationStatusHandler returns the public status snapshot of one
// application. Profile data and scorer reasoning are never exposed here.
func ApplicationStatusHandler(st store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		app, err := st.GetByID(c.Request().Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "not_found",
					Message:   "Application not found",
					RequestID: requestID,
					Timestamp: time.Now(),
				})
			}
			logging.LogWithRequestID(requestID).Error("Failed to load application", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "lookup_failed",
				Message:   "Failed to load application",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusOK, statusSnapshot(app))
	}
}

// ListApplicationsHandler returns the most recent applications, newest first
func ListApplicationsHandler(st store.ApplicationStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)

		apps, err := st.List(c.Request().Context(), defaultListLimit)
		if err != nil {
			logging.LogWithRequestID(requestID).Error("Failed to list applications", map[string]interface{}{
				"error": err.Error(),
			})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "lookup_failed",
				Message:   "Failed to list applications",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		snapshots := make([]models.ApplicationStatusResponse, 0, len(apps))
		for _, app := range apps {
			snapshots = append(snapshots, statusSnapshot(app))
		}

		return c.JSON(http.StatusOK, map[string]interface{}{
			"applications": snapshots,
			"count":        len(snapshots),
		})
	}
}

func statusSnapshot(app *models.Application) models.ApplicationStatusResponse {
	snapshot := models.ApplicationStatusResponse{
		ID:        app.ID,
		Name:      app.Name,
		Role:      app.Role,
		Status:    app.Status,
		CreatedAt: app.CreatedAt,
	}
	if app.Evaluation != nil {
		qualified := app.Evaluation.Qualified
		snapshot.Qualified = &qualified
	}
	return snapshot
}
