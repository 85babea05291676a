package mail

import (
	"fmt"
	"net/smtp"

	"github.com/eduport/eduport-backend/internal/config"
)

// Mailer delivers transactional mail. Failures are surfaced to the caller;
// delivery is never retried automatically.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer sends plain-text mail through an SMTP relay with PLAIN auth.
type SMTPMailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewSMTPMailer builds a mailer from configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: from,
	}
}

// Send delivers one message. Returns an error when the relay is not
// configured or the SMTP dialogue fails.
func (m *SMTPMailer) Send(to, subject, body string) error {
	if m.host == "" || m.user == "" {
		return fmt.Errorf("mail: smtp relay not configured")
	}

	msg := []byte(
		"From: " + m.from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body + "\r\n")

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(addr, auth, m.from, []string{to}, msg)
}

// OTPMessage renders the subject and body of a one-time-password email.
func OTPMessage(code string, ttlMinutes int) (subject, body string) {
	subject = "Your One-Time Password (OTP)"
	body = fmt.Sprintf(
		"Your one-time OTP is: %s\n\nPlease use this OTP within %d minutes. Do not share it with anyone.\n",
		code, ttlMinutes,
	)
	return subject, body
}
