package models

import "time"

// ApplyResponse represents the immediate response to an application submission
type ApplyResponse struct {
	Message       string            `json:"message"`
	ApplicationID string            `json:"application_id"`
	Status        ApplicationStatus `json:"status"`
}

// RoleSummary is the public view of an open role
type RoleSummary struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ApplicationStatusResponse is the public status snapshot of an application.
// It never exposes the scraped profile or the scorer's reasoning.
type ApplicationStatusResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Role      string            `json:"role"`
	Status    ApplicationStatus `json:"status"`
	Qualified *bool             `json:"qualified,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// WebhookAckResponse acknowledges receipt of a scrape-completion callback
type WebhookAckResponse struct {
	Received bool   `json:"received"`
	Status   string `json:"status"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error          string        `json:"error"`
	Message        string        `json:"message"`
	AvailableRoles []RoleSummary `json:"available_roles,omitempty"`
	ApplicationID  string        `json:"application_id,omitempty"`
	Status         string        `json:"status,omitempty"`
	RequestID      string        `json:"request_id,omitempty"`
	Timestamp      time.Time     `json:"timestamp"`
}
