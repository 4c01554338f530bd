package email

import (
	"context"
	"fmt"
	"time"

	"freelink_backend/internal/logger"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	// ResetValidity is printed in the password reset email
	ResetValidity time.Duration
}

// SMTPNotifier sends rendered HTML emails through an SMTP relay
type SMTPNotifier struct {
	config   SMTPConfig
	dialer   *gomail.Dialer
	renderer *TemplateManager
}

func NewSMTPNotifier(cfg SMTPConfig, renderer *TemplateManager) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid SMTP port: %d", cfg.Port)
	}
	return &SMTPNotifier{
		config:   cfg,
		dialer:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		renderer: renderer,
	}, nil
}

func (n *SMTPNotifier) SendPasswordReset(ctx context.Context, to, name, link string) error {
	body, err := n.renderer.Render(TemplatePasswordReset, passwordResetData{
		Name:     name,
		Link:     link,
		ValidFor: formatValidity(n.config.ResetValidity),
	})
	if err != nil {
		return err
	}
	return n.send(ctx, to, "Reset your password", body)
}

func (n *SMTPNotifier) SendApplicationStatusChanged(ctx context.Context, to, name, vacancyTitle, status string) error {
	body, err := n.renderer.Render(TemplateApplicationStatus, applicationStatusData{
		Name:         name,
		VacancyTitle: vacancyTitle,
		Status:       status,
	})
	if err != nil {
		return err
	}
	return n.send(ctx, to, subjectForStatus(status), body)
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", n.config.FromEmail, n.config.FromName)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	logger.CtxInfo(ctx, "Email sent", "to", to, "subject", subject)
	return nil
}
