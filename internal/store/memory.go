package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

// MemoryStore implements ApplicationStore using in-memory storage. Used by
// tests and for local development without a MongoDB instance.
type MemoryStore struct {
	mu   sync.RWMutex
	apps map[string]models.Application
}

// NewMemoryStore creates a new in-memory application store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		apps: make(map[string]models.Application),
	}
}

// Create persists a new application record, assigning its id and timestamps
func (s *MemoryStore) Create(ctx context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if app.ID == "" {
		app.ID = utils.GenerateRequestID()
	}

	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now

	s.apps[app.ID] = *app
	return nil
}

// GetByID retrieves an application by its id
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, exists := s.apps[id]
	if !exists {
		return nil, ErrNotFound
	}

	copied := app
	return &copied, nil
}

// FindActiveByEmailRole finds an in-flight application for the (email, role)
// pair
func (s *MemoryStore) FindActiveByEmailRole(ctx context.Context, email, role string) (*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, app := range s.apps {
		if app.Email != email || app.Role != role {
			continue
		}
		for _, status := range models.InFlightStatuses {
			if app.Status == status {
				copied := app
				return &copied, nil
			}
		}
	}
	return nil, ErrNotFound
}

// Update persists the current state of an application record
func (s *MemoryStore) Update(ctx context.Context, app *models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.apps[app.ID]; !exists {
		return ErrNotFound
	}

	app.UpdatedAt = time.Now().UTC()
	s.apps[app.ID] = *app
	return nil
}

// List returns the most recent applications, newest first
func (s *MemoryStore) List(ctx context.Context, limit int64) ([]*models.Application, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := make([]*models.Application, 0, len(s.apps))
	for _, app := range s.apps {
		copied := app
		apps = append(apps, &copied)
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})

	if limit > 0 && int64(len(apps)) > limit {
		apps = apps[:limit]
	}
	return apps, nil
}
