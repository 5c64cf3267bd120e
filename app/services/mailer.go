package services

import (
	"fmt"
	"log"
	"net/smtp"
)

type MailerConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type Mailer struct {
	config MailerConfig
}

func NewMailer(cfg MailerConfig) *Mailer {
	return &Mailer{
		config: cfg,
	}
}

func (m *Mailer) Enabled() bool {
	return m.config.Host != ""
}

func (m *Mailer) SendHTMLEmail(to, subject, htmlBody string) error {

	headers := map[string]string{
		"From":         m.config.From,
		"To":           to,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=\"UTF-8\"",
	}

	var msg string
	for k, v := range headers {
		msg += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	msg += "\r\n" + htmlBody

	auth := smtp.PlainAuth(m.config.From, m.config.Username, m.config.Password, m.config.Host)

	addr := fmt.Sprintf("%s:%s", m.config.Host, m.config.Port)

	err := smtp.SendMail(addr, auth, m.config.From, []string{to}, []byte(msg))
	if err != nil {
		log.Printf("Failed to send HTML email to %s: %v", to, err)
		return fmt.Errorf("failed to send HTML email: %w", err)
	}

	return nil
}

func BuildPasswordResetEmailBody(resetURL string, expiryMinutes int) string {
	return fmt.Sprintf(`
        <!DOCTYPE html>
        <html>
        <head>
            <meta charset="utf-8">
            <title>Reset your password</title>
        </head>
        <body>
            <p>We received a request to reset the password for your account.</p>
            <p><a href="%s">Click here to choose a new password.</a></p>
            <p>The link expires in %d minutes.</p>
            <p>If you did not request a password reset, you can ignore this email.</p>
        </body>
        </html>
    `, resetURL, expiryMinutes)
}
