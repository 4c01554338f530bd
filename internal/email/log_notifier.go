package email

import (
	"context"

	"freelink_backend/internal/logger"
)

// LogNotifier writes notifications to the log. Used when SMTP is not configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) SendPasswordReset(ctx context.Context, to, name, link string) error {
	logger.CtxInfo(ctx, "Password reset email (not sent, SMTP disabled)", "to", to, "name", name, "link", link)
	return nil
}

func (n *LogNotifier) SendApplicationStatusChanged(ctx context.Context, to, name, vacancyTitle, status string) error {
	logger.CtxInfo(ctx, "Application status email (not sent, SMTP disabled)",
		"to", to, "name", name, "vacancy", vacancyTitle, "status", status)
	return nil
}
