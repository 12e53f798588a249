package apify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/logging/types"
	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

// Webhook event types delivered by the scraping provider
const (
	EventRunSucceeded = "ACTOR.RUN.SUCCEEDED"
	EventRunFailed    = "ACTOR.RUN.FAILED"
)

// Client starts asynchronous profile scraping jobs against the Apify actor
// API and retrieves their single-item results
type Client struct {
	config     *config.Config
	httpClient *http.Client
	logger     types.Logger
}

// runResponse is the envelope returned when an actor run is started
type runResponse struct {
	Data struct {
		ID        string `json:"id"`
		Status    string `json:"status"`
		StartedAt string `json:"startedAt"`
	} `json:"data"`
}

// runInfoResponse is the envelope returned when querying an actor run
type runInfoResponse struct {
	Data struct {
		DefaultDatasetID string `json:"defaultDatasetId"`
	} `json:"data"`
}

// webhookSpec registers a completion callback on the actor run
type webhookSpec struct {
	EventTypes []string `json:"eventTypes"`
	RequestURL string   `json:"requestUrl"`
}

// startRunRequest is the actor run input
type startRunRequest struct {
	ProfileURLs []string      `json:"profileUrls"`
	MinDelay    int           `json:"minDelay"`
	MaxDelay    int           `json:"maxDelay"`
	Webhooks    []webhookSpec `json:"webhooks"`
}

// NewClient creates a new profile scraper client
func NewClient(cfg *config.Config) *Client {
	logger := logging.GetGlobalLogger()

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Scraper.Timeout,
		},
		logger: logger,
	}
}

// StartProfileScrape registers an asynchronous scraping job for the profile
// URL. The completion webhook carries the application id as correlation
// token so the callback stays routable regardless of the run id format.
func (c *Client) StartProfileScrape(ctx context.Context, profileURL, applicationID string) (string, error) {
	webhookURL := fmt.Sprintf("%s/webhook/scraper?applicationId=%s",
		c.config.Scraper.WebhookBaseURL, url.QueryEscape(applicationID))

	body := startRunRequest{
		ProfileURLs: []string{profileURL},
		MinDelay:    2,
		MaxDelay:    5,
		Webhooks: []webhookSpec{{
			EventTypes: []string{EventRunSucceeded, EventRunFailed},
			RequestURL: webhookURL,
		}},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scrape request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/acts/%s/runs?token=%s",
		c.config.Scraper.BaseURL, c.config.Scraper.ActorID, url.QueryEscape(c.config.Scraper.Token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build scrape request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &utils.ScraperUnavailableError{Op: "start", Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", &utils.ScraperUnavailableError{
			Op:         "start",
			StatusCode: resp.StatusCode,
			Detail:     string(detail),
		}
	}

	var result runResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", &utils.ScraperUnavailableError{Op: "start", Detail: fmt.Sprintf("invalid response: %v", err)}
	}

	c.logger.Info("Profile scraping job started", map[string]interface{}{
		"run_id":         result.Data.ID,
		"application_id": applicationID,
	})

	return result.Data.ID, nil
}

// FetchProfile retrieves the result of a completed scraping job: first the
// run is resolved to its dataset, then the first dataset item is returned.
// An empty dataset yields (nil, nil); repeating the fetch is safe.
func (c *Client) FetchProfile(ctx context.Context, runID string) (*models.ScrapedProfile, error) {
	runURL := fmt.Sprintf("%s/actor-runs/%s?token=%s",
		c.config.Scraper.BaseURL, url.PathEscape(runID), url.QueryEscape(c.config.Scraper.Token))

	var runInfo runInfoResponse
	if err := c.getJSON(ctx, "run info", runURL, &runInfo); err != nil {
		return nil, err
	}

	itemsURL := fmt.Sprintf("%s/datasets/%s/items?token=%s",
		c.config.Scraper.BaseURL, url.PathEscape(runInfo.Data.DefaultDatasetID), url.QueryEscape(c.config.Scraper.Token))

	var items []models.ScrapedProfile
	if err := c.getJSON(ctx, "dataset items", itemsURL, &items); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		c.logger.Warn("Scraping job produced no items", map[string]interface{}{"run_id": runID})
		return nil, nil
	}

	return &items[0], nil
}

// getJSON performs a GET against the scraper API and decodes the JSON body
func (c *Client) getJSON(ctx context.Context, op, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &utils.ScraperUnavailableError{Op: op, Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &utils.ScraperUnavailableError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Detail:     string(detail),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &utils.ScraperUnavailableError{Op: op, Detail: fmt.Sprintf("invalid response: %v", err)}
	}
	return nil
}
