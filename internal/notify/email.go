package notify

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"hiring-pipeline/internal/config"
	"hiring-pipeline/internal/logging"
	"hiring-pipeline/internal/logging/types"
	"hiring-pipeline/pkg/utils"
)

// EmailClient sends the technical challenge email to qualified candidates
// through Resend
type EmailClient struct {
	client *resend.Client
	config *config.Config
	logger types.Logger
}

// NewEmailClient creates a new Resend-backed email client
func NewEmailClient(cfg *config.Config) *EmailClient {
	return &EmailClient{
		client: resend.NewClient(cfg.Email.APIKey),
		config: cfg,
		logger: logging.GetGlobalLogger(),
	}
}

// SendChallengeEmail delivers the technical challenge to a qualified
// candidate. Failures wrap EmailDeliveryError; the caller treats delivery
// as best-effort.
func (ec *EmailClient) SendChallengeEmail(ctx context.Context, to, candidateName, challengeURL, roleName string) error {
	params := &resend.SendEmailRequest{
		From:    ec.config.Email.FromAddress,
		To:      []string{to},
		Subject: fmt.Sprintf("Next step: technical challenge for %s at Voidr", roleName),
		Html:    challengeEmailBody(candidateName, roleName, challengeURL),
	}

	sendCtx, cancel := context.WithTimeout(ctx, ec.config.Email.Timeout)
	defer cancel()

	sent, err := ec.client.Emails.SendWithContext(sendCtx, params)
	if err != nil {
		return &utils.EmailDeliveryError{Recipient: to, Err: err}
	}

	ec.logger.Info("Challenge email sent", map[string]interface{}{
		"recipient": to,
		"email_id":  sent.Id,
		"role":      roleName,
	})

	return nil
}

// challengeEmailBody renders the challenge email HTML
func challengeEmailBody(candidateName, roleName, challengeURL string) string {
	return fmt.Sprintf(`
<div style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1 style="color: #1a1a1a; font-size: 24px;">Hi, %s!</h1>

  <p style="color: #333; font-size: 16px; line-height: 1.6;">
    We were really happy to receive your application for the <strong>%s</strong> position at Voidr!
  </p>

  <p style="color: #333; font-size: 16px; line-height: 1.6;">
    We reviewed your profile and would like to move forward to the next step of
    the process: the <strong>technical challenge</strong>.
  </p>

  <div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 24px 0;">
    <h2 style="color: #1a1a1a; font-size: 18px; margin-top: 0;">Instructions</h2>
    <ol style="color: #333; font-size: 15px; line-height: 1.8; padding-left: 20px;">
      <li>Open the challenge repository using the link below</li>
      <li>Read the README carefully</li>
      <li>Fork the repository</li>
      <li>Complete the challenge at your own pace (we recommend up to 7 days)</li>
      <li>Reply to this email with a link to your repository</li>
    </ol>
  </div>

  <a href="%s"
     style="display: inline-block; background-color: #0066ff; color: white; padding: 14px 28px;
            text-decoration: none; border-radius: 6px; font-weight: 600; font-size: 16px; margin: 16px 0;">
    Open the challenge
  </a>

  <p style="color: #666; font-size: 14px; line-height: 1.6; margin-top: 24px;">
    If you have any questions, just reply to this email and we will be glad to help.
  </p>

  <p style="color: #333; font-size: 16px; line-height: 1.6;">
    Good luck!<br/>
    <strong>Team Voidr</strong>
  </p>

  <hr style="border: none; border-top: 1px solid #eee; margin: 32px 0;" />

  <p style="color: #999; font-size: 12px;">
    Voidr | AI-Powered Test Automation for Mission-Critical Systems<br/>
    <a href="https://voidr.co" style="color: #0066ff;">voidr.co</a>
  </p>
</div>`, candidateName, roleName, challengeURL)
}
