package store

import (
	"context"
	"errors"

	"hiring-pipeline/pkg/models"
)

// ErrNotFound is returned when no application matches the lookup
var ErrNotFound = errors.New("application not found")

// ApplicationStore defines the persistence interface for application records
type ApplicationStore interface {
	// Create persists a new application record
	Create(ctx context.Context, app *models.Application) error

	// GetByID retrieves an application by its id
	GetByID(ctx context.Context, id string) (*models.Application, error)

	// FindActiveByEmailRole finds an in-flight application for the
	// (email, role) pair, returning ErrNotFound when none exists
	FindActiveByEmailRole(ctx context.Context, email, role string) (*models.Application, error)

	// Update persists the current state of an application record
	Update(ctx context.Context, app *models.Application) error

	// List returns the most recent applications, newest first
	List(ctx context.Context, limit int64) ([]*models.Application, error)
}
