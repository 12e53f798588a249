package models

// ApplyRequest represents the request payload for submitting an application
type ApplyRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,min=10,max=20"`
	LinkedInURL string `json:"linkedin_url" validate:"required,url,contains=linkedin.com/in/"`
	Role        string `json:"role" validate:"required"`
}

// ScrapeWebhookPayload is the callback body sent by the scraping provider.
// The event type arrives either at the top level or nested inside a resource
// envelope depending on provider version; use EventType() to read it.
type ScrapeWebhookPayload struct {
	Event    string `json:"eventType,omitempty"`
	Resource struct {
		Event string `json:"eventType,omitempty"`
	} `json:"resource,omitempty"`
}

// EventType returns the event type regardless of which of the two payload
// shapes the provider used
func (p *ScrapeWebhookPayload) EventType() string {
	if p.Event != "" {
		return p.Event
	}
	return p.Resource.Event
}
