package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhookEventTypeTopLevel(t *testing.T) {
	var payload ScrapeWebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"eventType": "ACTOR.RUN.SUCCEEDED"}`), &payload))

	assert.Equal(t, "ACTOR.RUN.SUCCEEDED", payload.EventType())
}

func TestWebhookEventTypeNested(t *testing.T) {
	var payload ScrapeWebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"resource": {"eventType": "ACTOR.RUN.FAILED"}}`), &payload))

	assert.Equal(t, "ACTOR.RUN.FAILED", payload.EventType())
}

func TestWebhookEventTypeTopLevelWins(t *testing.T) {
	var payload ScrapeWebhookPayload
	body := `{"eventType": "ACTOR.RUN.SUCCEEDED", "resource": {"eventType": "ACTOR.RUN.FAILED"}}`
	require.NoError(t, json.Unmarshal([]byte(body), &payload))

	assert.Equal(t, "ACTOR.RUN.SUCCEEDED", payload.EventType())
}

func TestWebhookEventTypeMissing(t *testing.T) {
	var payload ScrapeWebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))

	assert.Equal(t, "", payload.EventType())
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusQualified.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.True(t, StatusError.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusScraping.IsTerminal())
	assert.False(t, StatusEvaluating.IsTerminal())
}
