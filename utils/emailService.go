package utils

import (
	"fmt"
	"log"

	"trainport/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail sends a transactional email through SendGrid. Callers treat
// failures as non-fatal; nothing user-facing waits on delivery.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendgridAPIKey == "" {
		log.Printf("[EMAIL] skipped %q to %s (no API key configured)", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("TrainPort", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("[EMAIL] error sending %q to %s: %v", subject, toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("[EMAIL] sendgrid rejected %q to %s: %d %s", subject, toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// getEmailTemplate wraps body content in the portal's HTML shell.
func getEmailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1F3A5F; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F3A5F; line-height: 1.6; }
			.content h2 { color: #1F3A5F; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #3E7CB1; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3E7CB1; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header"><h1>TrainPort</h1></div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">This is an automated message from your training portal.</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendWelcomeEmail notifies a new signup that their account awaits approval.
func SendWelcomeEmail(toEmail, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been created and is waiting for a manager to approve it.
		You will receive another email as soon as you can start training.</p>`, name)
	if err := SendEmail(toEmail, name, "Welcome to TrainPort", getEmailTemplate("Welcome!", body)); err != nil {
		log.Printf("[EMAIL] welcome email to %s failed: %v", toEmail, err)
	}
}

// SendApprovalEmail notifies a trainee that training is open for them.
func SendApprovalEmail(toEmail, name string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your account has been approved. Your first training module is unlocked and waiting.</p>
		<a class="btn" href="%s">Start training</a>`, name, config.AppConfig.PortalBaseURL)
	if err := SendEmail(toEmail, name, "Your training is ready", getEmailTemplate("Account approved", body)); err != nil {
		log.Printf("[EMAIL] approval email to %s failed: %v", toEmail, err)
	}
}

// SendOTPEmail delivers an email verification code.
func SendOTPEmail(toEmail, name, otp string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Your verification code is:</p>
		<div class="info-box"><strong>%s</strong></div>
		<p>The code is valid for 10 minutes.</p>`, name, otp)
	if err := SendEmail(toEmail, name, "Your TrainPort verification code", getEmailTemplate("Verify your email", body)); err != nil {
		log.Printf("[EMAIL] OTP email to %s failed: %v", toEmail, err)
	}
}

// SendCertificateEmail congratulates a trainee on completing the catalog.
func SendCertificateEmail(toEmail, name, certificateNumber string) {
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Congratulations! You have completed all of your assigned training modules!</p>
		<div class="info-box">Certificate number: <strong>%s</strong></div>
		<p>You can download your certificate from the portal.</p>`, name, certificateNumber)
	if err := SendEmail(toEmail, name, "Your training certificate", getEmailTemplate("Training complete", body)); err != nil {
		log.Printf("[EMAIL] certificate email to %s failed: %v", toEmail, err)
	}
}
