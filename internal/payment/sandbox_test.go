package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSandbox_IntentLifecycle(t *testing.T) {
	g := NewSandboxGateway("whsec_test")
	ctx := context.Background()

	intent, err := g.CreateIntent(ctx, IntentRequest{Amount: 400000, Currency: "cop", Metadata: map[string]string{"tokens": "1"}})
	require.NoError(t, err)
	assert.Equal(t, IntentRequiresPaymentMethod, intent.Status)
	assert.Equal(t, "COP", intent.Currency)
	assert.NotEmpty(t, intent.ClientSecret)

	_, err = g.MarkSucceeded(intent.ID)
	require.NoError(t, err)

	got, err := g.RetrieveIntent(ctx, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, IntentSucceeded, got.Status)
	assert.Equal(t, "1", got.Metadata["tokens"])

	_, err = g.RetrieveIntent(ctx, "pi_unknown")
	assert.ErrorIs(t, err, ErrIntentNotFound)
}

func TestSandbox_WebhookSignature(t *testing.T) {
	g := NewSandboxGateway("whsec_test")
	intent := &Intent{ID: "pi_1", Amount: 100, Currency: "COP", Status: IntentSucceeded}

	payload, header, err := g.BuildEvent("evt_1", EventIntentSucceeded, intent)
	require.NoError(t, err)

	ev, err := g.ParseWebhook(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", ev.ID)
	assert.Equal(t, EventIntentSucceeded, ev.Type)
	require.NotNil(t, ev.Intent)
	assert.Equal(t, "pi_1", ev.Intent.ID)

	_, err = g.ParseWebhook(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	_, err = g.ParseWebhook(payload, "")
	assert.ErrorIs(t, err, ErrInvalidSignature)

	other := NewSandboxGateway("another_secret")
	_, err = other.ParseWebhook(payload, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	tampered := append([]byte{}, payload...)
	tampered[len(tampered)-2] = ' '
	_, err = g.ParseWebhook(tampered, header)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestSandbox_MalformedSignedPayload(t *testing.T) {
	g := NewSandboxGateway("whsec_test")
	payload := []byte("not json")
	header := g.Sign(payload, time.Now())

	_, err := g.ParseWebhook(payload, header)
	assert.ErrorIs(t, err, ErrMalformedEvent)
}
