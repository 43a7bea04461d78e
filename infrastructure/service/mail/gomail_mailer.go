// Package mail implements the outbound Mailer port over SMTP using gomail.
package mail

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/clubhub/clubhub/infrastructure/service/logger"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    logger.Logger
}

func NewSMTPMailer(cfg SMTPConfig, log logger.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, text string) error {
	return m.send(ctx, to, subject, "text/plain", text)
}

func (m *SMTPMailer) SendHTML(ctx context.Context, to, subject, html string) error {
	return m.send(ctx, to, subject, "text/html", html)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, contentType, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody(contentType, body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("mail: send to %s failed: %w", to, err)
	}
	m.log.Debug(ctx, "mail sent", map[string]interface{}{"to": to, "subject": subject})
	return nil
}
