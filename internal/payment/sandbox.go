package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// SandboxGateway keeps intents in memory and signs webhooks with HMAC-SHA256.
// It backs local development and tests; nothing leaves the process.
type SandboxGateway struct {
	mu      sync.Mutex
	intents map[string]*Intent
	secret  []byte
	now     func() time.Time
}

func NewSandboxGateway(webhookSecret string) *SandboxGateway {
	return &SandboxGateway{
		intents: make(map[string]*Intent),
		secret:  []byte(webhookSecret),
		now:     time.Now,
	}
}

func (g *SandboxGateway) Name() string {
	return "sandbox"
}

func (g *SandboxGateway) PublishableKey() string {
	return "pk_sandbox"
}

func (g *SandboxGateway) CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("sandbox: amount must be positive")
	}
	id := "pi_sandbox_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	metadata := make(map[string]string, len(req.Metadata))
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	intent := &Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + uuid.NewString()[:8],
		Amount:       req.Amount,
		Currency:     strings.ToUpper(req.Currency),
		Status:       IntentRequiresPaymentMethod,
		Metadata:     metadata,
	}

	g.mu.Lock()
	g.intents[id] = intent
	g.mu.Unlock()

	copied := *intent
	return &copied, nil
}

func (g *SandboxGateway) RetrieveIntent(ctx context.Context, id string) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return nil, ErrIntentNotFound
	}
	copied := *intent
	return &copied, nil
}

// MarkSucceeded simulates the customer completing the payment
func (g *SandboxGateway) MarkSucceeded(id string) (*Intent, error) {
	return g.setStatus(id, IntentSucceeded)
}

func (g *SandboxGateway) MarkCanceled(id string) (*Intent, error) {
	return g.setStatus(id, IntentCanceled)
}

func (g *SandboxGateway) setStatus(id string, status IntentStatus) (*Intent, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	intent, ok := g.intents[id]
	if !ok {
		return nil, ErrIntentNotFound
	}
	intent.Status = status
	copied := *intent
	return &copied, nil
}

type sandboxEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object *Intent `json:"object"`
	} `json:"data"`
}

// BuildEvent renders a signed webhook delivery for intent. The header has the form "t=<unix>,v1=<hex>".
func (g *SandboxGateway) BuildEvent(eventID, eventType string, intent *Intent) (payload []byte, signatureHeader string, err error) {
	ev := sandboxEvent{ID: eventID, Type: eventType}
	ev.Data.Object = intent

	payload, err = json.Marshal(ev)
	if err != nil {
		return nil, "", err
	}
	return payload, g.Sign(payload, g.now()), nil
}

func (g *SandboxGateway) Sign(payload []byte, at time.Time) string {
	ts := strconv.FormatInt(at.Unix(), 10)
	return "t=" + ts + ",v1=" + g.signature(ts, payload)
}

func (g *SandboxGateway) signature(ts string, payload []byte) string {
	mac := hmac.New(sha256.New, g.secret)
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *SandboxGateway) ParseWebhook(payload []byte, signatureHeader string) (*WebhookEvent, error) {
	var ts, sig string
	for _, part := range strings.Split(signatureHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts = v
		case "v1":
			sig = v
		}
	}
	if ts == "" || sig == "" {
		return nil, ErrInvalidSignature
	}
	if !hmac.Equal([]byte(sig), []byte(g.signature(ts, payload))) {
		return nil, ErrInvalidSignature
	}

	var ev sandboxEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.ID == "" || ev.Type == "" {
		return nil, ErrMalformedEvent
	}
	return &WebhookEvent{ID: ev.ID, Type: ev.Type, Intent: ev.Data.Object}, nil
}
