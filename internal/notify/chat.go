package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/logging/types"
	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

// ChatClient posts recruiting notifications to the fixed destination channel
// of the team chat
type ChatClient struct {
	config     *config.Config
	httpClient *http.Client
	logger     types.Logger
}

// chatMessagePayload is the message body sent to the chat API
type chatMessagePayload struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// NewChatClient creates a new chat notification client
func NewChatClient(cfg *config.Config) *ChatClient {
	return &ChatClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Chat.Timeout,
		},
		logger: logging.GetGlobalLogger(),
	}
}

// NotifyQualified posts the qualified-candidate message to the team channel
func (cc *ChatClient) NotifyQualified(ctx context.Context, app *models.Application, roleName string) error {
	return cc.send(ctx, buildQualifiedMessage(app, roleName))
}

// NotifyRejected posts the rejected-candidate message to the team channel,
// including the configured minimum score for audit context
func (cc *ChatClient) NotifyRejected(ctx context.Context, app *models.Application, roleName string, minScore int) error {
	return cc.send(ctx, buildRejectedMessage(app, roleName, minScore))
}

// send delivers a single pre-rendered message to the configured channel.
// Failures wrap ChatDeliveryError; the caller treats delivery as
// best-effort.
func (cc *ChatClient) send(ctx context.Context, message string) error {
	payload, err := json.Marshal(chatMessagePayload{
		ChatID:  cc.config.Chat.ChannelID,
		Message: message,
	})
	if err != nil {
		return &utils.ChatDeliveryError{Detail: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/messages", cc.config.Chat.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return &utils.ChatDeliveryError{Detail: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cc.config.Chat.APIKey)

	resp, err := cc.httpClient.Do(req)
	if err != nil {
		return &utils.ChatDeliveryError{Detail: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &utils.ChatDeliveryError{
			StatusCode: resp.StatusCode,
			Detail:     string(detail),
		}
	}

	cc.logger.Info("Chat notification sent", map[string]interface{}{
		"channel_id": cc.config.Chat.ChannelID,
	})

	return nil
}
