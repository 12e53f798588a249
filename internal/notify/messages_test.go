package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hiring-pipeline/pkg/models"
)

func evaluatedApp() *models.Application {
	return &models.Application{
		ID:          "app-1",
		Name:        "Ana Souza",
		Email:       "ana@example.com",
		Phone:       "11987654321",
		LinkedInURL: "https://linkedin.com/in/anasouza",
		Role:        "sdet-jr",
		Evaluation: &models.Evaluation{
			Score:     14,
			Qualified: true,
			Bullets:   []string{"6 years in QA", "CS degree", "Based in Brazil", "Strong automation", "Open source work"},
		},
	}
}

func TestBuildQualifiedMessage(t *testing.T) {
	msg := buildQualifiedMessage(evaluatedApp(), "SDET Jr")

	assert.Contains(t, msg, "QUALIFIED")
	assert.Contains(t, msg, "Ana Souza")
	assert.Contains(t, msg, "ana@example.com")
	assert.Contains(t, msg, "SDET Jr")
	assert.Contains(t, msg, "14/20")
	assert.Contains(t, msg, "- 6 years in QA")
	assert.Contains(t, msg, "https://wa.me/5511987654321")
	assert.Contains(t, msg, "Technical challenge sent by email")
	assert.Contains(t, msg, "https://linkedin.com/in/anasouza")
}

func TestBuildRejectedMessage(t *testing.T) {
	app := evaluatedApp()
	app.Evaluation.Score = 7
	app.Evaluation.Qualified = false

	msg := buildRejectedMessage(app, "SDET Jr", 10)

	assert.Contains(t, msg, "not qualified")
	assert.Contains(t, msg, "7/20 (minimum: 10)")
	assert.Contains(t, msg, "https://wa.me/5511987654321")
	assert.NotContains(t, msg, "Technical challenge sent by email")
}

func TestBuildMessagesWithoutEvaluation(t *testing.T) {
	app := evaluatedApp()
	app.Evaluation = nil

	msg := buildRejectedMessage(app, "SDET Jr", 10)
	assert.Contains(t, msg, "0/20")
}
