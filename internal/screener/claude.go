package screener

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/logging/types"
	"hiring-pipeline/pkg/models"
)

// ClaudeScreener implements the Screener interface using Anthropic's Claude
type ClaudeScreener struct {
	client anthropic.Client
	config *config.Config
	logger types.Logger
}

// NewClaudeScreener creates a new Claude-backed screener instance
func NewClaudeScreener(cfg *config.Config) *ClaudeScreener {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.Screening.APIKey),
	)

	return &ClaudeScreener{
		client: client,
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// Evaluate sends the candidate's normalized document to Claude with the
// fixed rubric and returns the sanitized verdict. The qualified flag is
// recomputed locally as score >= threshold regardless of what the model
// proposed, and the evaluation timestamp is stamped locally. No retries.
func (cs *ClaudeScreener) Evaluate(ctx context.Context, candidateName, document string, threshold int) (*models.Evaluation, error) {
	startTime := time.Now()

	cs.logger.Info("Starting candidate evaluation", map[string]interface{}{
		"candidate":      candidateName,
		"rubric_version": RubricVersion,
		"document_size":  len(document),
	})

	prompt := fmt.Sprintf("%s\n\n---\n\n## CANDIDATE PROFILE: %s\n\n%s",
		screeningPrompt, candidateName, document)

	callCtx, cancel := context.WithTimeout(ctx, cs.config.Screening.Timeout)
	defer cancel()

	response, err := cs.client.Messages.New(callCtx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cs.config.Screening.Model),
		MaxTokens:   int64(cs.config.Screening.MaxTokens),
		Temperature: anthropic.Float(float64(cs.config.Screening.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call reasoning service: %w", err)
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}

	result, err := parseVerdict(responseText)
	if err != nil {
		cs.logger.Error("Failed to parse evaluation response", map[string]interface{}{
			"candidate": candidateName,
			"error":     err.Error(),
		})
		return nil, err
	}

	evaluation := buildEvaluation(result, threshold)

	cs.logger.Info("Candidate evaluation completed", map[string]interface{}{
		"candidate":       candidateName,
		"score":           evaluation.Score,
		"qualified":       evaluation.Qualified,
		"processing_time": time.Since(startTime).String(),
	})

	return evaluation, nil
}
