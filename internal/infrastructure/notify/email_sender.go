package notify

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
)

// EmailSender delivers an HTML email.
type EmailSender interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPEmailSender sends mail through an authenticated SMTP relay.
type SMTPEmailSender struct {
	cfg  SMTPConfig
	auth smtp.Auth
	send func(e *email.Email, addr string, auth smtp.Auth) error
}

func NewSMTPEmailSender(cfg SMTPConfig) *SMTPEmailSender {
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPEmailSender{
		cfg:  cfg,
		auth: auth,
		send: func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

func (s *SMTPEmailSender) Send(ctx context.Context, to []string, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", shopName, s.cfg.From)
	e.To = to
	e.Subject = subject
	e.HTML = []byte(html)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.send(e, addr, s.auth); err != nil {
		return fmt.Errorf("send email %q: %w", subject, err)
	}
	return nil
}
