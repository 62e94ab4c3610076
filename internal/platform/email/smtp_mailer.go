package email

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/weatherlyhq/weatherly/internal/config"
)

var _ Mailer = (*SMTPMailer)(nil)

type SMTPMailer struct {
	from   string
	pass   string
	host   string
	port   int
	sender string
}

func NewSMTPMailer(cfg *config.SMTP, opts *config.Email) *SMTPMailer {
	return &SMTPMailer{
		from:   cfg.User,
		pass:   cfg.Password,
		host:   cfg.Host,
		port:   cfg.Port,
		sender: opts.Sender,
	}
}

func (e *SMTPMailer) send(to []string, subject, body, contentType string) error {
	auth := smtp.PlainAuth("", e.from, e.pass, e.host)

	recipients := strings.Join(to, ", ")
	headers := "From: " + e.sender + "\r\n" +
		"To: " + recipients + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0\r\n" +
		"Content-Type: " + contentType + "; charset=\"UTF-8\"\r\n\r\n"

	message := headers + body
	addr := fmt.Sprintf("%s:%d", e.host, e.port)

	if err := smtp.SendMail(addr, auth, e.from, to, []byte(message)); err != nil {
		return fmt.Errorf("sending email from %q to %q: %w", e.from, to, err)
	}

	slog.Info("Email sent.", "subject", subject)
	return nil
}

func (e *SMTPMailer) SendHTML(to []string, subject, htmlBody string) error {
	if err := e.send(to, subject, htmlBody, "text/html"); err != nil {
		return fmt.Errorf("sending html email to %q with subject %q: %w", to, subject, err)
	}
	return nil
}

func (e *SMTPMailer) SendPlain(to []string, subject, body string) error {
	return e.send(to, subject, body, "text/plain")
}
