package payment

import (
	"context"
	"errors"
)

var (
	ErrIntentNotFound   = errors.New("payment intent not found")
	ErrInvalidSignature = errors.New("invalid webhook signature")
	ErrMalformedEvent   = errors.New("malformed webhook payload")
)

type IntentStatus string

const (
	IntentRequiresPaymentMethod IntentStatus = "requires_payment_method"
	IntentProcessing            IntentStatus = "processing"
	IntentSucceeded             IntentStatus = "succeeded"
	IntentCanceled              IntentStatus = "canceled"
)

const (
	EventIntentSucceeded = "payment_intent.succeeded"
	EventIntentFailed    = "payment_intent.payment_failed"
)

// Intent is the gateway side handle of an in-progress payment
type Intent struct {
	ID           string            `json:"id"`
	ClientSecret string            `json:"client_secret,omitempty"`
	Amount       int64             `json:"amount"` // minor units
	Currency     string            `json:"currency"`
	Status       IntentStatus      `json:"status"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type IntentRequest struct {
	Amount      int64 // minor units
	Currency    string
	Description string
	Metadata    map[string]string
}

// WebhookEvent is a verified gateway notification. Intent is nil for event types that do not carry one.
type WebhookEvent struct {
	ID     string
	Type   string
	Intent *Intent
}

// Gateway is the external payment capability
type Gateway interface {
	Name() string
	PublishableKey() string
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	// RetrieveIntent returns ErrIntentNotFound for unknown ids
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
	// ParseWebhook verifies the signature header before decoding the payload
	ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error)
}
