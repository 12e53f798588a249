package notify

import (
	"fmt"
	"strings"

	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

// buildQualifiedMessage renders the team notification for a qualified
// candidate, confirming the challenge email was dispatched
func buildQualifiedMessage(app *models.Application, roleName string) string {
	whatsappLink := utils.BuildWhatsAppLink(app.Phone, app.Name)

	return fmt.Sprintf(`New QUALIFIED candidate

Name: %s
Email: %s
Phone: %s
Role: %s
Score: %d/20

Summary:
%s

WhatsApp: %s
Technical challenge sent by email

LinkedIn: %s`,
		app.Name,
		app.Email,
		app.Phone,
		roleName,
		evaluationScore(app),
		bulletList(app),
		whatsappLink,
		app.LinkedInURL,
	)
}

// buildRejectedMessage renders the team notification for a rejected
// candidate, carrying the configured minimum score for audit context
func buildRejectedMessage(app *models.Application, roleName string, minScore int) string {
	whatsappLink := utils.BuildWhatsAppLink(app.Phone, app.Name)

	return fmt.Sprintf(`Candidate not qualified

Name: %s
Email: %s
Role: %s
Score: %d/20 (minimum: %d)

Summary:
%s

WhatsApp: %s
LinkedIn: %s`,
		app.Name,
		app.Email,
		roleName,
		evaluationScore(app),
		minScore,
		bulletList(app),
		whatsappLink,
		app.LinkedInURL,
	)
}

func evaluationScore(app *models.Application) int {
	if app.Evaluation == nil {
		return 0
	}
	return app.Evaluation.Score
}

func bulletList(app *models.Application) string {
	if app.Evaluation == nil {
		return ""
	}

	lines := make([]string, 0, len(app.Evaluation.Bullets))
	for _, b := range app.Evaluation.Bullets {
		lines = append(lines, "- "+b)
	}
	return strings.Join(lines, "\n")
}
