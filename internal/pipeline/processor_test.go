package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/store"
	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

type fakeScraper struct {
	runID      string
	startErr   error
	profile    *models.ScrapedProfile
	fetchErr   error
	startCalls int
	fetchCalls int
}

func (f *fakeScraper) StartProfileScrape(ctx context.Context, profileURL, applicationID string) (string, error) {
	f.startCalls++
	if f.startErr != nil {
		return "", f.startErr
	}
	return f.runID, nil
}

func (f *fakeScraper) FetchProfile(ctx context.Context, runID string) (*models.ScrapedProfile, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.profile, nil
}

type fakeScreener struct {
	evaluation *models.Evaluation
	err        error
	calls      int
}

func (f *fakeScreener) Evaluate(ctx context.Context, candidateName, document string, threshold int) (*models.Evaluation, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	eval := *f.evaluation
	return &eval, nil
}

type fakeEmail struct {
	err   error
	calls int
}

func (f *fakeEmail) SendChallengeEmail(ctx context.Context, to, candidateName, challengeURL, roleName string) error {
	f.calls++
	return f.err
}

type fakeChat struct {
	err           error
	qualifiedRuns int
	rejectedRuns  int
}

func (f *fakeChat) NotifyQualified(ctx context.Context, app *models.Application, roleName string) error {
	f.qualifiedRuns++
	return f.err
}

func (f *fakeChat) NotifyRejected(ctx context.Context, app *models.Application, roleName string, minScore int) error {
	f.rejectedRuns++
	return f.err
}

type fixture struct {
	processor *Processor
	store     *store.MemoryStore
	scraper   *fakeScraper
	screener  *fakeScreener
	email     *fakeEmail
	chat      *fakeChat
}

func newFixture() *fixture {
	cfg := &config.Config{}
	cfg.Screening.ScoreThreshold = 10

	st := store.NewMemoryStore()
	scraper := &fakeScraper{runID: "run-1", profile: &models.ScrapedProfile{FullName: "Ana Souza", Headline: "QA Engineer"}}
	screener := &fakeScreener{evaluation: &models.Evaluation{Score: 14, Qualified: true, Bullets: []string{"a", "b", "c", "d", "e"}}}
	email := &fakeEmail{}
	chat := &fakeChat{}

	return &fixture{
		processor: NewProcessor(cfg, st, scraper, screener, email, chat),
		store:     st,
		scraper:   scraper,
		screener:  screener,
		email:     email,
		chat:      chat,
	}
}

func validRequest() *models.ApplyRequest {
	return &models.ApplyRequest{
		Name:        "Ana Souza",
		Email:       "Ana.Souza@example.com",
		Phone:       "11987654321",
		LinkedInURL: "https://linkedin.com/in/anasouza",
		Role:        "sdet-jr",
	}
}

func TestIntakeStartsScraping(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, app.ID)

	assert.Equal(t, models.StatusScraping, app.Status)
	assert.Equal(t, "run-1", app.ScrapeRunID)
	assert.Equal(t, "ana.souza@example.com", app.Email)
	assert.Equal(t, 1, f.scraper.startCalls)

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScraping, stored.Status)
}

func TestIntakeUnknownRole(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Role = "cto"

	_, err := f.processor.Intake(context.Background(), req)

	var unknownRole *utils.UnknownRoleError
	require.True(t, errors.As(err, &unknownRole))
	assert.Equal(t, "cto", unknownRole.Slug)
	assert.Equal(t, 0, f.scraper.startCalls)
}

func TestIntakeDuplicateInFlight(t *testing.T) {
	f := newFixture()

	first, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	// Same email in different casing still counts as the same candidate
	req := validRequest()
	req.Email = "ANA.SOUZA@EXAMPLE.COM"

	_, err = f.processor.Intake(context.Background(), req)

	var duplicate *utils.DuplicateInProgressError
	require.True(t, errors.As(err, &duplicate))
	assert.Equal(t, first.ID, duplicate.ApplicationID)
	assert.Equal(t, string(models.StatusScraping), duplicate.Status)
}

func TestIntakeAllowedAfterTerminalFailure(t *testing.T) {
	f := newFixture()

	first, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.HandleScrapeFailure(context.Background(), first.ID))

	second, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, models.StatusScraping, second.Status)
}

func TestIntakeScrapeStartFailureStillRegisters(t *testing.T) {
	f := newFixture()
	f.scraper.startErr = &utils.ScraperUnavailableError{Op: "start", StatusCode: 503}

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, app.Status)
	assert.Equal(t, "Failed to start LinkedIn scraping", app.ErrorMessage)

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, stored.Status)
}

func TestHandleScrapeFailure(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.HandleScrapeFailure(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, stored.Status)
	assert.Equal(t, "LinkedIn scraping failed", stored.ErrorMessage)
	assert.Nil(t, stored.Evaluation)
	assert.Equal(t, 0, f.screener.calls)
}

func TestHandleScrapeFailureIgnoresTerminalStatus(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	// The success callback completes the workflow first
	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	// A late failure callback for the same run must not touch the record
	require.NoError(t, f.processor.HandleScrapeFailure(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusQualified, stored.Status)
	assert.Empty(t, stored.ErrorMessage)
	require.NotNil(t, stored.Evaluation)
}

func TestHandleScrapeFailureIdempotent(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.HandleScrapeFailure(context.Background(), app.ID))
	require.NoError(t, f.processor.HandleScrapeFailure(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, stored.Status)
	assert.Equal(t, "LinkedIn scraping failed", stored.ErrorMessage)
}

func TestProcessCandidateQualifiedFlow(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusQualified, stored.Status)
	require.NotNil(t, stored.LinkedInProfile)
	assert.Equal(t, "QA Engineer", stored.LinkedInProfile.Headline)
	assert.NotEmpty(t, stored.LinkedInProfile.RawMarkdown)
	require.NotNil(t, stored.Evaluation)
	assert.Equal(t, 14, stored.Evaluation.Score)
	assert.True(t, stored.Evaluation.Qualified)

	assert.Equal(t, 1, f.email.calls)
	assert.Equal(t, 1, f.chat.qualifiedRuns)
	assert.Equal(t, 0, f.chat.rejectedRuns)
	assert.NotNil(t, stored.Notifications.EmailSentAt)
	assert.NotNil(t, stored.Notifications.ChatNotifiedAt)
}

func TestProcessCandidateRejectedFlow(t *testing.T) {
	f := newFixture()
	f.screener.evaluation = &models.Evaluation{Score: 6, Qualified: false, Bullets: []string{"a", "b", "c", "d", "e"}}

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRejected, stored.Status)
	assert.Equal(t, 0, f.email.calls)
	assert.Equal(t, 1, f.chat.rejectedRuns)
	assert.Nil(t, stored.Notifications.EmailSentAt)
	assert.NotNil(t, stored.Notifications.ChatNotifiedAt)
}

func TestProcessCandidateEmptyProfile(t *testing.T) {
	f := newFixture()
	f.scraper.profile = nil

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	err = f.processor.ProcessCandidate(context.Background(), app.ID)
	require.Error(t, err)

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, stored.Status)
	assert.Equal(t, "No profile data returned from scraping", stored.ErrorMessage)
	assert.Equal(t, 0, f.screener.calls)
}

func TestProcessCandidateScreenerFailure(t *testing.T) {
	f := newFixture()
	f.screener.err = &utils.ScoringParseError{Detail: "no JSON object found in response"}

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	err = f.processor.ProcessCandidate(context.Background(), app.ID)
	require.Error(t, err)

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusError, stored.Status)
	assert.Equal(t, "Candidate evaluation failed", stored.ErrorMessage)
	assert.Nil(t, stored.Evaluation)
	assert.Equal(t, 0, f.email.calls)
}

func TestProcessCandidateIgnoresNonScrapingStatus(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	// First callback completes the workflow
	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))
	// A duplicate callback for the same run is a no-op
	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	assert.Equal(t, 1, f.scraper.fetchCalls)
	assert.Equal(t, 1, f.screener.calls)
	assert.Equal(t, 1, f.email.calls)
}

func TestEmailFailureDoesNotRevertStatus(t *testing.T) {
	f := newFixture()
	f.email.err = &utils.EmailDeliveryError{Recipient: "ana.souza@example.com", Err: errors.New("provider down")}

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusQualified, stored.Status)
	assert.Nil(t, stored.Notifications.EmailSentAt)
	// Chat notification is still attempted and recorded
	assert.Equal(t, 1, f.chat.qualifiedRuns)
	assert.NotNil(t, stored.Notifications.ChatNotifiedAt)
}

func TestChatFailureDoesNotRevertStatus(t *testing.T) {
	f := newFixture()
	f.chat.err = &utils.ChatDeliveryError{StatusCode: 500}

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusQualified, stored.Status)
	assert.NotNil(t, stored.Notifications.EmailSentAt)
	assert.Nil(t, stored.Notifications.ChatNotifiedAt)
}

func TestNotificationsNotResentWhenTimestampsSet(t *testing.T) {
	f := newFixture()

	app, err := f.processor.Intake(context.Background(), validRequest())
	require.NoError(t, err)

	// A retried processing run of the same record may arrive with delivery
	// timestamps already recorded; neither channel is invoked again
	sent := time.Now().UTC()
	stored, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	stored.Notifications.EmailSentAt = &sent
	stored.Notifications.ChatNotifiedAt = &sent
	require.NoError(t, f.store.Update(context.Background(), stored))

	require.NoError(t, f.processor.ProcessCandidate(context.Background(), app.ID))

	final, err := f.store.GetByID(context.Background(), app.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusQualified, final.Status)
	assert.Equal(t, 0, f.email.calls)
	assert.Equal(t, 0, f.chat.qualifiedRuns)
	assert.Equal(t, sent, *final.Notifications.EmailSentAt)
	assert.Equal(t, sent, *final.Notifications.ChatNotifiedAt)
}

func TestProcessCandidateUnknownApplication(t *testing.T) {
	f := newFixture()

	err := f.processor.ProcessCandidate(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
