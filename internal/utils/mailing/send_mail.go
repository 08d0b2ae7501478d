package mailing

import (
	"fmt"
	"html"
	"strconv"

	"foodbank-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type (
	MailConfig struct {
		AppURL       string
		SMTPHost     string
		SMTPPort     string
		SMTPSender   string
		SMTPEmail    string
		SMTPPassword string
	}

	Mailer interface {
		SendMail(toEmail string, subject string, body string) error
	}

	smtpMailer struct {
		config MailConfig
	}
)

func LoadMailConfig() MailConfig {
	return MailConfig{
		AppURL:       utils.GetConfig("APP_URL"),
		SMTPHost:     utils.GetConfig("SMTP_HOST"),
		SMTPPort:     utils.GetConfig("SMTP_PORT"),
		SMTPSender:   utils.GetConfig("SMTP_SENDER_NAME"),
		SMTPEmail:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		SMTPPassword: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}
}

// NewMailer returns nil when no SMTP host is configured.
func NewMailer(config MailConfig) Mailer {
	if config.SMTPHost == "" {
		return nil
	}
	return &smtpMailer{config: config}
}

func (m *smtpMailer) SendMail(toEmail string, subject string, body string) error {
	mailer := gomail.NewMessage()
	if m.config.SMTPSender != "" {
		mailer.SetAddressHeader("From", m.config.SMTPEmail, m.config.SMTPSender)
	} else {
		mailer.SetHeader("From", m.config.SMTPEmail)
	}
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	port, err := strconv.Atoi(m.config.SMTPPort)
	if err != nil {
		return err
	}
	dialer := gomail.NewDialer(
		m.config.SMTPHost,
		port,
		m.config.SMTPEmail,
		m.config.SMTPPassword,
	)

	return dialer.DialAndSend(mailer)
}

func WelcomeMail(displayName, appURL string) (string, string) {
	if displayName == "" {
		displayName = "there"
	}
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to Foodbank. Browse the foods shared near you and save the ones you like to your favorites.</p>",
		html.EscapeString(displayName),
	)
	if appURL != "" {
		body += fmt.Sprintf(`<p><a href="%s">Open Foodbank</a></p>`, html.EscapeString(appURL))
	}
	return "Welcome to Foodbank", body
}
