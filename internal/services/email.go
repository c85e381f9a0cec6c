package services

import (
	"fmt"
	"html"
	"net/smtp"

	"github.com/megamounds/sitetrack-api/internal/config"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailService struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Send is a no-op when SMTP is not configured.
func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return s.sendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

func (s *EmailService) SendInvite(to, fullName string, role string, inviterName, acceptURL string) error {
	subject := "You've been invited to SiteTrack"
	greeting := "Hi,"
	if fullName != "" {
		greeting = "Hi " + html.EscapeString(fullName) + ","
	}
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>SiteTrack invitation</h2>
			<p>%s</p>
			<p><strong>%s</strong> has invited you to join SiteTrack as <strong>%s</strong>.</p>
			<p><a href="%s">Set your password to get started</a></p>
		</body>
		</html>
	`, greeting, html.EscapeString(inviterName), html.EscapeString(role), acceptURL)

	return s.Send(to, subject, body)
}
