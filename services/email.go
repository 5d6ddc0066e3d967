package services

import (
	"fmt"
	"net/smtp"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// EmailService sends transactional mail over SMTP.
type EmailService struct {
	cfg EmailConfig
}

func NewEmailService(cfg EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

func (s *EmailService) send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := s.cfg.Host + ":" + s.cfg.Port
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// SendCredentialsEmail delivers a freshly provisioned account's login
// details to the client.
func (s *EmailService) SendCredentialsEmail(to, name, email, password, loginURL string) error {
	subject := "Your account credentials"
	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>An account has been created for you. Use the credentials below to sign in:</p>
<p><b>Email:</b> %s<br/><b>Temporary password:</b> %s</p>
<p><a href="%s">Sign in</a> and change your password after your first login.</p>
</body></html>`, name, email, password, loginURL)
	return s.send(to, subject, body)
}

func (s *EmailService) SendPasswordResetEmail(to, name, resetURL string) error {
	subject := "Reset your password"
	body := fmt.Sprintf(`<html><body>
<p>Hi %s,</p>
<p>We received a request to reset your password. The link below is valid for one hour:</p>
<p><a href="%s">Reset password</a></p>
<p>If you did not request this, you can ignore this email.</p>
</body></html>`, name, resetURL)
	return s.send(to, subject, body)
}
