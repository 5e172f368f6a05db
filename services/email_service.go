package services

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"spareparts-app/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// SendPasswordResetEmail mails the reset link. The link is valid for one
// hour; the token inside it is single-use.
func (es *EmailService) SendPasswordResetEmail(email, username, resetURL string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password Reset - Spare Parts App")

	htmlBody := fmt.Sprintf(`
<h2>Password Reset Request</h2>
<p>Hi %s,</p>
<p>You requested a password reset for your Spare Parts App account.</p>
<p>Please click the link below to reset your password:</p>
<a href="%s" style="background: #007bff; color: white; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Reset Password</a>
<p>This link will expire in 1 hour.</p>
<p>If you didn't request this, please ignore this email.</p>
`, username, resetURL)

	textBody := fmt.Sprintf(`Hi %s,

You requested a password reset for your Spare Parts App account.

Open the link below to reset your password:

%s

This link will expire in 1 hour.

If you didn't request this, please ignore this email.
`, username, resetURL)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}
	return nil
}

// SendPasswordChangedEmail confirms a completed reset.
func (es *EmailService) SendPasswordChangedEmail(email, username string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password Changed - Spare Parts App")

	htmlBody := fmt.Sprintf(`
<h2>Password Changed</h2>
<p>Hi %s,</p>
<p>Your Spare Parts App password has been changed successfully.</p>
<p>If you didn't make this change, please reset your password immediately.</p>
`, username)

	textBody := fmt.Sprintf(`Hi %s,

Your Spare Parts App password has been changed successfully.

If you didn't make this change, please reset your password immediately.
`, username)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send password changed email: %w", err)
	}
	return nil
}
