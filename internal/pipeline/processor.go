// Package pipeline orchestrates the application workflow: intake, scraping
// callbacks, screening, and notifications, persisting the record after every
// state change.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/logging/types"
	"hiring-pipeline/internal/scraper/markdown"
	"hiring-pipeline/internal/store"
	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

// Terminal error messages recorded on the application when a processing
// stage fails
const (
	errScrapeStartFailed = "Failed to start LinkedIn scraping"
	errScrapeFailed      = "LinkedIn scraping failed"
	errEmptyProfile      = "No profile data returned from scraping"
	errEvaluationError   = "Candidate evaluation failed"
)

// ProfileScraper starts scraping jobs and retrieves their results
type ProfileScraper interface {
	StartProfileScrape(ctx context.Context, profileURL, applicationID string) (string, error)
	FetchProfile(ctx context.Context, runID string) (*models.ScrapedProfile, error)
}

// Screener evaluates a candidate document against the screening rubric
type Screener interface {
	Evaluate(ctx context.Context, candidateName, document string, threshold int) (*models.Evaluation, error)
}

// EmailSender delivers the technical challenge email
type EmailSender interface {
	SendChallengeEmail(ctx context.Context, to, candidateName, challengeURL, roleName string) error
}

// ChatNotifier posts candidate outcomes to the team channel
type ChatNotifier interface {
	NotifyQualified(ctx context.Context, app *models.Application, roleName string) error
	NotifyRejected(ctx context.Context, app *models.Application, roleName string, minScore int) error
}

// Processor drives applications through the workflow. All mutations are
// written through to the store before the next stage begins, so a restart
// can never observe a state that was not persisted.
type Processor struct {
	config   *config.Config
	store    store.ApplicationStore
	scraper  ProfileScraper
	screener Screener
	email    EmailSender
	chat     ChatNotifier
	logger   types.Logger
}

// NewProcessor creates a new workflow processor
func NewProcessor(cfg *config.Config, st store.ApplicationStore, scraper ProfileScraper, screener Screener, email EmailSender, chat ChatNotifier) *Processor {
	return &Processor{
		config:   cfg,
		store:    st,
		scraper:  scraper,
		screener: screener,
		email:    email,
		chat:     chat,
		logger:   logging.GetGlobalLogger(),
	}
}

// Intake validates and registers a new application, then starts the
// asynchronous profile scrape. A scrape start failure marks the record as
// errored but the intake itself still succeeds: the record exists and is
// inspectable.
func (p *Processor) Intake(ctx context.Context, req *models.ApplyRequest) (*models.Application, error) {
	role, ok := config.GetRole(req.Role)
	if !ok || !role.Active {
		return nil, &utils.UnknownRoleError{Slug: req.Role}
	}

	email := utils.NormalizeEmail(req.Email)

	existing, err := p.store.FindActiveByEmailRole(ctx, email, role.Slug)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for existing application: %w", err)
	}
	if existing != nil {
		return nil, &utils.DuplicateInProgressError{
			ApplicationID: existing.ID,
			Status:        string(existing.Status),
		}
	}

	app := &models.Application{
		Name:        req.Name,
		Email:       email,
		Phone:       req.Phone,
		LinkedInURL: req.LinkedInURL,
		Role:        role.Slug,
		Status:      models.StatusPending,
	}

	if err := p.store.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	p.logger.Info("Application received", map[string]interface{}{
		"application_id": app.ID,
		"role":           app.Role,
	})

	runID, err := p.scraper.StartProfileScrape(ctx, app.LinkedInURL, app.ID)
	if err != nil {
		p.logger.Error("Failed to start profile scrape", map[string]interface{}{
			"application_id": app.ID,
			"error":          err.Error(),
		})
		p.markError(ctx, app, errScrapeStartFailed)
		return app, nil
	}

	app.ScrapeRunID = runID
	app.Status = models.StatusScraping
	p.persist(ctx, app)

	return app, nil
}

// HandleScrapeFailure records a failed scraping run reported by the
// provider's callback. Only applications still in the scraping state are
// touched; a duplicate or late failure callback cannot overwrite a record
// that already reached a terminal status.
func (p *Processor) HandleScrapeFailure(ctx context.Context, applicationID string) error {
	app, err := p.store.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if app.Status != models.StatusScraping {
		p.logger.Warn("Ignoring failure callback for application not in scraping state", map[string]interface{}{
			"application_id": app.ID,
			"status":         app.Status,
		})
		return nil
	}

	p.logger.Warn("Scraping run reported failure", map[string]interface{}{
		"application_id": app.ID,
		"run_id":         app.ScrapeRunID,
	})

	p.markError(ctx, app, errScrapeFailed)
	return nil
}

// ProcessCandidate runs the post-scrape stages: fetch the profile, evaluate
// it, and notify. Only applications still in the scraping state are
// processed, which makes duplicate callbacks for the same run harmless.
func (p *Processor) ProcessCandidate(ctx context.Context, applicationID string) error {
	app, err := p.store.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}

	if app.Status != models.StatusScraping {
		p.logger.Warn("Ignoring callback for application not in scraping state", map[string]interface{}{
			"application_id": app.ID,
			"status":         app.Status,
		})
		return nil
	}

	scraped, err := p.scraper.FetchProfile(ctx, app.ScrapeRunID)
	if err != nil {
		p.logger.Error("Failed to fetch scraped profile", map[string]interface{}{
			"application_id": app.ID,
			"run_id":         app.ScrapeRunID,
			"error":          err.Error(),
		})
		p.markError(ctx, app, errScrapeFailed)
		return err
	}
	if scraped == nil {
		p.markError(ctx, app, errEmptyProfile)
		return fmt.Errorf("%s: application %s", errEmptyProfile, app.ID)
	}

	app.LinkedInProfile = markdown.BuildProfile(scraped)
	app.Status = models.StatusEvaluating
	if err := p.persist(ctx, app); err != nil {
		return err
	}

	evaluation, err := p.screener.Evaluate(ctx, app.Name, app.LinkedInProfile.RawMarkdown, p.config.Screening.ScoreThreshold)
	if err != nil {
		p.logger.Error("Candidate evaluation failed", map[string]interface{}{
			"application_id": app.ID,
			"error":          err.Error(),
		})
		p.markError(ctx, app, errEvaluationError)
		return err
	}

	app.Evaluation = evaluation
	if evaluation.Qualified {
		app.Status = models.StatusQualified
	} else {
		app.Status = models.StatusRejected
	}
	if err := p.persist(ctx, app); err != nil {
		return err
	}

	p.logger.Info("Candidate evaluated", map[string]interface{}{
		"application_id": app.ID,
		"score":          evaluation.Score,
		"qualified":      evaluation.Qualified,
	})

	p.notify(ctx, app)
	return nil
}

// notify delivers the outcome side effects. Both channels are best-effort:
// failures are logged and never change the application status.
func (p *Processor) notify(ctx context.Context, app *models.Application) {
	role, _ := config.GetRole(app.Role)
	roleName := role.Name
	if roleName == "" {
		roleName = app.Role
	}

	if app.Status == models.StatusQualified && app.Notifications.EmailSentAt == nil {
		if err := p.email.SendChallengeEmail(ctx, app.Email, app.Name, role.ChallengeURL, roleName); err != nil {
			p.logger.Error("Challenge email delivery failed", map[string]interface{}{
				"application_id": app.ID,
				"error":          err.Error(),
			})
		} else {
			now := time.Now().UTC()
			app.Notifications.EmailSentAt = &now
			p.persist(ctx, app)
		}
	}

	if app.Notifications.ChatNotifiedAt != nil {
		return
	}

	var chatErr error
	if app.Status == models.StatusQualified {
		chatErr = p.chat.NotifyQualified(ctx, app, roleName)
	} else {
		chatErr = p.chat.NotifyRejected(ctx, app, roleName, p.config.Screening.ScoreThreshold)
	}

	if chatErr != nil {
		p.logger.Error("Chat notification delivery failed", map[string]interface{}{
			"application_id": app.ID,
			"error":          chatErr.Error(),
		})
		return
	}

	now := time.Now().UTC()
	app.Notifications.ChatNotifiedAt = &now
	p.persist(ctx, app)
}

// markError transitions the application to the terminal error state
func (p *Processor) markError(ctx context.Context, app *models.Application, message string) {
	app.Status = models.StatusError
	app.ErrorMessage = message
	p.persist(ctx, app)
}

// persist writes the current record state through to the store
func (p *Processor) persist(ctx context.Context, app *models.Application) error {
	app.UpdatedAt = time.Now().UTC()
	if err := p.store.Update(ctx, app); err != nil {
		p.logger.Error("Failed to persist application", map[string]interface{}{
			"application_id": app.ID,
			"status":         app.Status,
			"error":          err.Error(),
		})
		return err
	}
	return nil
}
