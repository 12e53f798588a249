package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/pkg/models"
)

func newApp(email, role string, status models.ApplicationStatus) *models.Application {
	return &models.Application{
		Name:        "Ana Souza",
		Email:       email,
		Phone:       "11987654321",
		LinkedInURL: "https://linkedin.com/in/anasouza",
		Role:        role,
		Status:      status,
	}
}

func TestMemoryStoreCreateAssignsIDAndTimestamps(t *testing.T) {
	st := NewMemoryStore()
	app := newApp("ana@example.com", "sdet-jr", models.StatusPending)

	require.NoError(t, st.Create(context.Background(), app))

	assert.NotEmpty(t, app.ID)
	assert.False(t, app.CreatedAt.IsZero())
	assert.False(t, app.UpdatedAt.IsZero())
}

func TestMemoryStoreGetByID(t *testing.T) {
	st := NewMemoryStore()
	app := newApp("ana@example.com", "sdet-jr", models.StatusPending)
	require.NoError(t, st.Create(context.Background(), app))

	found, err := st.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.Email, found.Email)

	_, err = st.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	st := NewMemoryStore()
	app := newApp("ana@example.com", "sdet-jr", models.StatusPending)
	require.NoError(t, st.Create(context.Background(), app))

	first, err := st.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	first.Status = models.StatusError

	second, err := st.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, second.Status)
}

func TestMemoryStoreFindActiveByEmailRole(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	inFlight := newApp("ana@example.com", "sdet-jr", models.StatusScraping)
	require.NoError(t, st.Create(ctx, inFlight))

	found, err := st.FindActiveByEmailRole(ctx, "ana@example.com", "sdet-jr")
	require.NoError(t, err)
	assert.Equal(t, inFlight.ID, found.ID)

	// Different role does not match
	_, err = st.FindActiveByEmailRole(ctx, "ana@example.com", "backend-jr")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreFindActiveSkipsTerminalFailures(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	rejected := newApp("ana@example.com", "sdet-jr", models.StatusRejected)
	require.NoError(t, st.Create(ctx, rejected))
	errored := newApp("bia@example.com", "sdet-jr", models.StatusError)
	require.NoError(t, st.Create(ctx, errored))

	_, err := st.FindActiveByEmailRole(ctx, "ana@example.com", "sdet-jr")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = st.FindActiveByEmailRole(ctx, "bia@example.com", "sdet-jr")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreFindActiveIncludesQualified(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	qualified := newApp("ana@example.com", "sdet-jr", models.StatusQualified)
	require.NoError(t, st.Create(ctx, qualified))

	found, err := st.FindActiveByEmailRole(ctx, "ana@example.com", "sdet-jr")
	require.NoError(t, err)
	assert.Equal(t, qualified.ID, found.ID)
}

func TestMemoryStoreUpdate(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	app := newApp("ana@example.com", "sdet-jr", models.StatusPending)
	require.NoError(t, st.Create(ctx, app))

	app.Status = models.StatusScraping
	app.ScrapeRunID = "run-1"
	require.NoError(t, st.Update(ctx, app))

	stored, err := st.GetByID(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScraping, stored.Status)
	assert.Equal(t, "run-1", stored.ScrapeRunID)

	missing := newApp("bia@example.com", "sdet-jr", models.StatusPending)
	missing.ID = "missing"
	assert.ErrorIs(t, st.Update(ctx, missing), ErrNotFound)
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, st.Create(ctx, newApp(email, "sdet-jr", models.StatusPending)))
		time.Sleep(2 * time.Millisecond)
	}

	apps, err := st.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, "c@example.com", apps[0].Email)
	assert.Equal(t, "a@example.com", apps[2].Email)

	limited, err := st.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
