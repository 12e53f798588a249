package utils

import "fmt"

// UnknownRoleError indicates the requested role slug does not resolve to a
// known, active role. No record is created.
type UnknownRoleError struct {
	Slug string
}

func (e *UnknownRoleError) Error() string {
	return fmt.Sprintf("unknown or inactive role: %s", e.Slug)
}

// DuplicateInProgressError indicates an application for the same (email,
// role) pair is already in flight. Carries the existing record's identity.
type DuplicateInProgressError struct {
	ApplicationID string
	Status        string
}

func (e *DuplicateInProgressError) Error() string {
	return fmt.Sprintf("application %s already in progress (status: %s)", e.ApplicationID, e.Status)
}

// ScraperUnavailableError indicates the remote scraping service rejected a
// call or returned a non-success status
type ScraperUnavailableError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *ScraperUnavailableError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("scraper %s failed: status %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("scraper %s failed: %s", e.Op, e.Detail)
}

// ScoringParseError indicates no JSON object could be located or parsed in
// the reasoning service's response
type ScoringParseError struct {
	Detail string
}

func (e *ScoringParseError) Error() string {
	return fmt.Sprintf("failed to parse evaluation response: %s", e.Detail)
}

// InvalidVerdictError indicates a JSON object was parsed but does not match
// the expected verdict schema
type InvalidVerdictError struct {
	Detail string
}

func (e *InvalidVerdictError) Error() string {
	return fmt.Sprintf("invalid evaluation verdict: %s", e.Detail)
}

// EmailDeliveryError indicates the email provider rejected a send. Treated
// as best-effort by the pipeline: logged, never fatal.
type EmailDeliveryError struct {
	Recipient string
	Err       error
}

func (e *EmailDeliveryError) Error() string {
	return fmt.Sprintf("failed to send email to %s: %v", e.Recipient, e.Err)
}

func (e *EmailDeliveryError) Unwrap() error {
	return e.Err
}

// ChatDeliveryError indicates the chat provider rejected a send. Treated as
// best-effort by the pipeline: logged, never fatal.
type ChatDeliveryError struct {
	StatusCode int
	Detail     string
}

func (e *ChatDeliveryError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("chat notification failed: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("chat notification failed: %s", e.Detail)
}
