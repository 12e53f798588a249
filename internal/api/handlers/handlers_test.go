package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/background"
	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/pipeline"
	"hiring-pipeline/internal/store"
	"hiring-pipeline/pkg/models"
)

type stubScraper struct{}

func (stubScraper) StartProfileScrape(ctx context.Context, profileURL, applicationID string) (string, error) {
	return "run-1", nil
}

func (stubScraper) FetchProfile(ctx context.Context, runID string) (*models.ScrapedProfile, error) {
	return &models.ScrapedProfile{FullName: "Ana Souza"}, nil
}

type stubScreener struct{}

func (stubScreener) Evaluate(ctx context.Context, candidateName, document string, threshold int) (*models.Evaluation, error) {
	return &models.Evaluation{
		Score:     14,
		Qualified: true,
		Bullets:   []string{"a", "b", "c", "d", "e"},
	}, nil
}

type stubEmail struct{}

func (stubEmail) SendChallengeEmail(ctx context.Context, to, candidateName, challengeURL, roleName string) error {
	return nil
}

type stubChat struct{}

func (stubChat) NotifyQualified(ctx context.Context, app *models.Application, roleName string) error {
	return nil
}

func (stubChat) NotifyRejected(ctx context.Context, app *models.Application, roleName string, minScore int) error {
	return nil
}

type env struct {
	cfg         *config.Config
	store       *store.MemoryStore
	processor   *pipeline.Processor
	taskManager background.TaskManager
}

func newEnv(t *testing.T) *env {
	t.Helper()

	cfg := &config.Config{}
	cfg.Screening.ScoreThreshold = 10
	cfg.BackgroundTasks.MaxWorkers = 2
	cfg.BackgroundTasks.QueueSize = 10
	cfg.BackgroundTasks.TaskTimeout = 5 * time.Second
	cfg.BackgroundTasks.MaxTaskAge = time.Hour

	st := store.NewMemoryStore()
	processor := pipeline.NewProcessor(cfg, st, stubScraper{}, stubScreener{}, stubEmail{}, stubChat{})

	tm := background.NewTaskManager(cfg)
	require.NoError(t, tm.Start(context.Background()))
	t.Cleanup(func() { tm.Stop(context.Background()) })

	return &env{cfg: cfg, store: st, processor: processor, taskManager: tm}
}

func applyBody() string {
	return `{
		"name": "Ana Souza",
		"email": "ana@example.com",
		"phone": "11987654321",
		"linkedin_url": "https://linkedin.com/in/anasouza",
		"role": "sdet-jr"
	}`
}

func doJSON(handler echo.HandlerFunc, method, target, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, handler(e.NewContext(req, rec))
}

func TestApplyHandlerAcceptsApplication(t *testing.T) {
	env := newEnv(t)
	handler := ApplyHandler(env.cfg, env.processor)

	rec, err := doJSON(handler, http.MethodPost, "/apply", applyBody())
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp models.ApplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ApplicationID)
	assert.Equal(t, models.StatusScraping, resp.Status)
}

func TestApplyHandlerRejectsInvalidPayload(t *testing.T) {
	env := newEnv(t)
	handler := ApplyHandler(env.cfg, env.processor)

	rec, err := doJSON(handler, http.MethodPost, "/apply", `{"name": "A"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyHandlerRejectsNonLinkedInURL(t *testing.T) {
	env := newEnv(t)
	handler := ApplyHandler(env.cfg, env.processor)

	body := strings.Replace(applyBody(), "https://linkedin.com/in/anasouza", "https://example.com/profile", 1)
	rec, err := doJSON(handler, http.MethodPost, "/apply", body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplyHandlerUnknownRoleListsAlternatives(t *testing.T) {
	env := newEnv(t)
	handler := ApplyHandler(env.cfg, env.processor)

	body := strings.Replace(applyBody(), "sdet-jr", "cto", 1)
	rec, err := doJSON(handler, http.MethodPost, "/apply", body)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "unknown_role", resp.Error)
	assert.NotEmpty(t, resp.AvailableRoles)
}

func TestApplyHandlerDuplicateConflict(t *testing.T) {
	env := newEnv(t)
	handler := ApplyHandler(env.cfg, env.processor)

	rec, err := doJSON(handler, http.MethodPost, "/apply", applyBody())
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, rec.Code)

	rec, err = doJSON(handler, http.MethodPost, "/apply", applyBody())
	require.NoError(t, err)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "application_in_progress", resp.Error)
	assert.NotEmpty(t, resp.ApplicationID)
}

func TestWebhookHandlerSchedulesProcessing(t *testing.T) {
	env := newEnv(t)

	app, err := env.processor.Intake(context.Background(), &models.ApplyRequest{
		Name:        "Ana Souza",
		Email:       "ana@example.com",
		Phone:       "11987654321",
		LinkedInURL: "https://linkedin.com/in/anasouza",
		Role:        "sdet-jr",
	})
	require.NoError(t, err)

	handler := ScrapeWebhookHandler(env.cfg, env.store, env.processor, env.taskManager)
	rec, err := doJSON(handler, http.MethodPost, "/webhook/scraper?applicationId="+app.ID,
		`{"eventType": "ACTOR.RUN.SUCCEEDED"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var ack models.WebhookAckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.True(t, ack.Received)
	assert.Equal(t, "processing_scheduled", ack.Status)

	// Processing happens in the background; poll until it completes
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		stored, err := env.store.GetByID(context.Background(), app.ID)
		require.NoError(t, err)
		if stored.Status.IsTerminal() {
			assert.Equal(t, models.StatusQualified, stored.Status)
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("application never reached a terminal status")
}

func TestWebhookHandlerFailureEvent(t *testing.T) {
	env := newEnv(t)

	app, err := env.processor.Intake(context.Background(), &models.ApplyRequest{
		Name:        "Ana Souza",
		Email:       "ana@example.com",
		Phone:       "11987654321",
		LinkedInURL: "https://linkedin.com/in/anasouza",
		Role:        "sdet-jr",
	})
	require.NoError(t, err)

	handler := ScrapeWebhookHandler(env.cfg, env.store, env.processor, env.taskManager)
	rec, err := doJSON(handler, http.MethodPost, "/webhook/scraper?applicationId="+app.ID,
		`{"resource": {"eventType": "ACTOR.RUN.FAILED"}}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := env.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, stored.Status)
	assert.Equal(t, "LinkedIn scraping failed", stored.ErrorMessage)
}

func TestWebhookHandlerMissingApplicationID(t *testing.T) {
	env := newEnv(t)

	handler := ScrapeWebhookHandler(env.cfg, env.store, env.processor, env.taskManager)
	rec, err := doJSON(handler, http.MethodPost, "/webhook/scraper", `{"eventType": "ACTOR.RUN.SUCCEEDED"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookHandlerUnknownApplication(t *testing.T) {
	env := newEnv(t)

	handler := ScrapeWebhookHandler(env.cfg, env.store, env.processor, env.taskManager)
	rec, err := doJSON(handler, http.MethodPost, "/webhook/scraper?applicationId=missing",
		`{"eventType": "ACTOR.RUN.SUCCEEDED"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebhookHandlerUnknownEventIgnored(t *testing.T) {
	env := newEnv(t)

	app, err := env.processor.Intake(context.Background(), &models.ApplyRequest{
		Name:        "Ana Souza",
		Email:       "ana@example.com",
		Phone:       "11987654321",
		LinkedInURL: "https://linkedin.com/in/anasouza",
		Role:        "sdet-jr",
	})
	require.NoError(t, err)

	handler := ScrapeWebhookHandler(env.cfg, env.store, env.processor, env.taskManager)
	rec, err := doJSON(handler, http.MethodPost, "/webhook/scraper?applicationId="+app.ID,
		`{"eventType": "ACTOR.RUN.ABORTED"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var ack models.WebhookAckResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	assert.Equal(t, "ignored", ack.Status)
}

func TestApplicationStatusHandlerHidesInternals(t *testing.T) {
	env := newEnv(t)

	app := &models.Application{
		Name:   "Ana Souza",
		Email:  "ana@example.com",
		Role:   "sdet-jr",
		Status: models.StatusQualified,
		Evaluation: &models.Evaluation{
			Score:     14,
			Qualified: true,
			Reasoning: "internal reasoning",
		},
	}
	require.NoError(t, env.store.Create(context.Background(), app))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/apply/"+app.ID, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(app.ID)

	require.NoError(t, ApplicationStatusHandler(env.store)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `"qualified":true`)
	assert.NotContains(t, body, "internal reasoning")
	assert.NotContains(t, body, "linkedin_profile")
}

func TestApplicationStatusHandlerNotFound(t *testing.T) {
	env := newEnv(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/apply/missing", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	require.NoError(t, ApplicationStatusHandler(env.store)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRolesHandler(t *testing.T) {
	rec, err := doJSON(RolesHandler(), http.MethodGet, "/apply/roles", "")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sdet-jr")
}
