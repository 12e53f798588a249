package handlers

import (
	"errors"
	"net/http"
	"time"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

// ApplyHandler handles application submissions. The response acknowledges
// receipt; scraping and evaluation continue asynchronously.
func ApplyHandler(cfg *config.Config, processor *pipeline.Processor) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := requestIDFrom(c)
		logger := logging.LogWithRequestID(requestID)

		var req models.ApplyRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Failed to bind apply request", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "invalid_request",
				Message:   "Invalid request format",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		if err := validate.Struct(&req); err != nil {
			logger.Error("Apply request validation failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "validation_failed",
				Message:   err.Error(),
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		app, err := processor.Intake(c.Request().Context(), &req)
		if err != nil {
			var unknownRole *utils.UnknownRoleError
			if errors.As(err, &unknownRole) {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error:          "unknown_role",
					Message:        err.Error(),
					AvailableRoles: roleSummaries(),
					RequestID:      requestID,
					Timestamp:      time.Now(),
				})
			}

			var duplicate *utils.DuplicateInProgressError
			if errors.As(err, &duplicate) {
				return c.JSON(http.StatusConflict, models.ErrorResponse{
					Error:         "application_in_progress",
					Message:       "An application for this role is already in progress",
					ApplicationID: duplicate.ApplicationID,
					Status:        duplicate.Status,
					RequestID:     requestID,
					Timestamp:     time.Now(),
				})
			}

			logger.Error("Application intake failed", map[string]interface{}{"error": err.Error()})
			return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:     "intake_failed",
				Message:   "Failed to register application",
				RequestID: requestID,
				Timestamp: time.Now(),
			})
		}

		return c.JSON(http.StatusAccepted, models.ApplyResponse{
			Message:       "Application received",
			ApplicationID: app.ID,
			Status:        app.Status,
		})
	}
}

// RolesHandler lists the roles currently accepting applications
func RolesHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"roles": roleSummaries(),
		})
	}
}

func roleSummaries() []models.RoleSummary {
	active := config.ActiveRoles()
	summaries := make([]models.RoleSummary, 0, len(active))
	for _, role := range active {
		summaries = append(summaries, models.RoleSummary{
			Slug:        role.Slug,
			Name:        role.Name,
			Description: role.Description,
		})
	}
	return summaries
}

// requestIDFrom reads the request ID set by the validation middleware,
// falling back to a fresh one for directly-invoked handlers
func requestIDFrom(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}
