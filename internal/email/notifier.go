package email

import (
	"context"
	"time"
)

// Notifier delivers user facing notifications. Callers treat failures as best-effort.
type Notifier interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
	SendApplicationStatusChanged(ctx context.Context, to, name, vacancyTitle, status string) error
}

type passwordResetData struct {
	Name     string
	Link     string
	ValidFor string
}

type applicationStatusData struct {
	Name         string
	VacancyTitle string
	Status       string
}

func subjectForStatus(status string) string {
	if status == "accepted" {
		return "Your application was accepted"
	}
	return "Update on your application"
}

func formatValidity(d time.Duration) string {
	if d == time.Hour {
		return "1 hour"
	}
	return d.String()
}
