// Package metrics holds the domain Prometheus metrics. HTTP request metrics come from ginprom.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "freelink"

// VacanciesCreatedTotal counts vacancies published (each one spends a token).
var VacanciesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vacancies_created_total",
		Help:      "Total number of vacancies created.",
	},
)

// VacancyRejectedNoTokensTotal counts creation attempts refused with 402.
var VacancyRejectedNoTokensTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vacancy_rejected_no_tokens_total",
		Help:      "Total number of vacancy creations refused for lack of tokens.",
	},
)

// ApplicationTransitionsTotal counts application state changes.
// Label:
//   - to: "pending" (submitted), "accepted", "rejected" or "cancelled"
var ApplicationTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_transitions_total",
		Help:      "Total number of application state changes, by target state.",
	},
	[]string{"to"},
)

// TokensCreditedTotal sums tokens credited by confirmed payments.
// Label:
//   - source: "webhook" or "confirm"
var TokensCreditedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_credited_total",
		Help:      "Total number of tokens credited from confirmed payments.",
	},
	[]string{"source"},
)

// WebhookEventsTotal counts webhook deliveries by outcome.
// Label:
//   - result: "processed", "duplicate", "invalid_signature", "ignored" or "error"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_webhook_events_total",
		Help:      "Total number of payment webhook deliveries, by result.",
	},
	[]string{"result"},
)

// NotificationFailuresTotal counts best-effort notifications that could not be delivered.
var NotificationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notifications that failed to send.",
	},
	[]string{"kind"},
)
