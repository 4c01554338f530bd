package services

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"freelink_backend/internal/models"
	"freelink_backend/internal/payment"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memoryDeduper struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (d *memoryDeduper) IsDuplicate(_ context.Context, eventID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.seen[eventID], nil
}

func (d *memoryDeduper) Mark(_ context.Context, eventID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.seen == nil {
		d.seen = map[string]bool{}
	}
	d.seen[eventID] = true
	return nil
}

type paymentFixture struct {
	svc     PaymentService
	db      *gorm.DB
	gateway *payment.SandboxGateway
}

func newPaymentFixture(t *testing.T, deduper payment.Deduper) *paymentFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	gateway := payment.NewSandboxGateway("whsec_test")
	svc := NewPaymentService(
		repositories.NewProfileRepository(),
		repositories.NewPaymentRepository(),
		gateway,
		deduper,
		PaymentSettings{TokenPriceUSD: 1, USDToCOPRate: 4000, Currency: "COP", WelcomeTokens: 5},
	)
	return &paymentFixture{svc: svc, db: db, gateway: gateway}
}

// purchase creates a pending purchase of tokens and marks its intent as paid in the sandbox
func (f *paymentFixture) purchase(t *testing.T, userID string, tokens int) *payment.Intent {
	t.Helper()
	resp, err := f.svc.CreatePurchase(context.Background(), f.db, userID, tokens)
	require.NoError(t, err)
	intent, err := f.gateway.MarkSucceeded(resp.PaymentIntentID)
	require.NoError(t, err)
	return intent
}

func (f *paymentFixture) deliver(t *testing.T, eventID, eventType string, intent *payment.Intent) {
	t.Helper()
	payload, header, err := f.gateway.BuildEvent(eventID, eventType, intent)
	require.NoError(t, err)
	f.svc.HandleWebhook(context.Background(), f.db, payload, header)
}

func TestPaymentService_CreatePurchase(t *testing.T) {
	f := newPaymentFixture(t, nil)
	user, company := testutil.CreateCompany(t, f.db, 0)

	resp, err := f.svc.CreatePurchase(context.Background(), f.db, user.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(12000), resp.Amount)
	assert.Equal(t, "COP", resp.Currency)
	assert.Equal(t, 3, resp.Tokens)
	assert.NotEmpty(t, resp.ClientSecret)

	intent, err := f.gateway.RetrieveIntent(context.Background(), resp.PaymentIntentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1200000), intent.Amount)
	assert.Equal(t, company.ID, intent.Metadata["company_id"])

	history, err := f.svc.History(f.db, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TransactionStatusPending, history[0].Status)
	assert.Equal(t, resp.PaymentIntentID, history[0].PaymentIntentID)

	for _, tokens := range []int{0, 101} {
		_, err := f.svc.CreatePurchase(context.Background(), f.db, user.ID, tokens)
		requireAppError(t, err, http.StatusBadRequest)
	}
}

func TestPaymentService_WebhookCreditsOnce(t *testing.T) {
	f := newPaymentFixture(t, nil)
	user, company := testutil.CreateCompany(t, f.db, 0)
	intent := f.purchase(t, user.ID, 4)

	f.deliver(t, "evt_1", payment.EventIntentSucceeded, intent)
	assert.Equal(t, 4, testutil.Balance(t, f.db, company.ID).Available)

	// Replays of the same event and a second event for the same intent change nothing
	f.deliver(t, "evt_1", payment.EventIntentSucceeded, intent)
	f.deliver(t, "evt_2", payment.EventIntentSucceeded, intent)
	assert.Equal(t, 4, testutil.Balance(t, f.db, company.ID).Available)

	var events int64
	require.NoError(t, f.db.Model(&models.PaymentEvent{}).Count(&events).Error)
	assert.Equal(t, int64(2), events)

	tx, err := repositories.NewPaymentRepository().FindTransactionByIntent(f.db, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusCompleted, tx.Status)
}

func TestPaymentService_WebhookFastPathDedup(t *testing.T) {
	deduper := &memoryDeduper{}
	f := newPaymentFixture(t, deduper)
	user, company := testutil.CreateCompany(t, f.db, 0)
	intent := f.purchase(t, user.ID, 2)

	f.deliver(t, "evt_fast", payment.EventIntentSucceeded, intent)
	dup, err := deduper.IsDuplicate(context.Background(), "evt_fast")
	require.NoError(t, err)
	assert.True(t, dup)

	f.deliver(t, "evt_fast", payment.EventIntentSucceeded, intent)
	assert.Equal(t, 2, testutil.Balance(t, f.db, company.ID).Available)
}

func TestPaymentService_WebhookInvalidSignatureIgnored(t *testing.T) {
	f := newPaymentFixture(t, nil)
	user, company := testutil.CreateCompany(t, f.db, 0)
	intent := f.purchase(t, user.ID, 2)

	payload, _, err := f.gateway.BuildEvent("evt_forged", payment.EventIntentSucceeded, intent)
	require.NoError(t, err)
	f.svc.HandleWebhook(context.Background(), f.db, payload, "t=1,v1=forged")

	assert.Equal(t, 0, testutil.Balance(t, f.db, company.ID).Available)
	var events int64
	require.NoError(t, f.db.Model(&models.PaymentEvent{}).Count(&events).Error)
	assert.Zero(t, events)
}

func TestPaymentService_WebhookFailedPayment(t *testing.T) {
	f := newPaymentFixture(t, nil)
	user, company := testutil.CreateCompany(t, f.db, 0)

	resp, err := f.svc.CreatePurchase(context.Background(), f.db, user.ID, 2)
	require.NoError(t, err)
	intent, err := f.gateway.MarkCanceled(resp.PaymentIntentID)
	require.NoError(t, err)

	f.deliver(t, "evt_failed", payment.EventIntentFailed, intent)

	tx, err := repositories.NewPaymentRepository().FindTransactionByIntent(f.db, intent.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusFailed, tx.Status)

	// A late success for a failed purchase does not credit
	f.deliver(t, "evt_late", payment.EventIntentSucceeded, intent)
	assert.Equal(t, 0, testutil.Balance(t, f.db, company.ID).Available)
}

func TestPaymentService_WebhookUnknownIntent(t *testing.T) {
	f := newPaymentFixture(t, nil)
	intent := &payment.Intent{ID: "pi_unknown", Amount: 100, Currency: "COP", Status: payment.IntentSucceeded}

	f.deliver(t, "evt_unknown", payment.EventIntentSucceeded, intent)

	var events int64
	require.NoError(t, f.db.Model(&models.PaymentEvent{}).Where("event_id = ?", "evt_unknown").Count(&events).Error)
	assert.Equal(t, int64(1), events)
}

func TestPaymentService_ConfirmPayment(t *testing.T) {
	f := newPaymentFixture(t, nil)
	ctx := context.Background()
	user, company := testutil.CreateCompany(t, f.db, 1)
	stranger, _ := testutil.CreateCompany(t, f.db, 0)

	resp, err := f.svc.CreatePurchase(ctx, f.db, user.ID, 5)
	require.NoError(t, err)

	// 1. Not paid yet
	_, err = f.svc.ConfirmPayment(ctx, f.db, user.ID, resp.PaymentIntentID)
	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Equal(t, map[string]interface{}{"status": payment.IntentRequiresPaymentMethod}, appErr.Details)

	_, err = f.gateway.MarkSucceeded(resp.PaymentIntentID)
	require.NoError(t, err)

	// 2. Someone else's intent
	_, err = f.svc.ConfirmPayment(ctx, f.db, stranger.ID, resp.PaymentIntentID)
	requireAppError(t, err, http.StatusNotFound)

	// 3. Credited once, confirmed twice
	first, err := f.svc.ConfirmPayment(ctx, f.db, user.ID, resp.PaymentIntentID)
	require.NoError(t, err)
	assert.True(t, first.Credited)
	assert.Equal(t, 6, first.Available)

	second, err := f.svc.ConfirmPayment(ctx, f.db, user.ID, resp.PaymentIntentID)
	require.NoError(t, err)
	assert.False(t, second.Credited)
	assert.Equal(t, 6, second.Available)

	// 4. The webhook arriving afterwards is a no-op
	intent, err := f.gateway.RetrieveIntent(ctx, resp.PaymentIntentID)
	require.NoError(t, err)
	f.deliver(t, "evt_after_confirm", payment.EventIntentSucceeded, intent)
	assert.Equal(t, 6, testutil.Balance(t, f.db, company.ID).Available)

	_, err = f.svc.ConfirmPayment(ctx, f.db, user.ID, "pi_missing")
	requireAppError(t, err, http.StatusNotFound)
}

func TestPaymentService_BalanceAndConfig(t *testing.T) {
	f := newPaymentFixture(t, nil)
	user, _ := testutil.CreateCompany(t, f.db, 3)

	balance, err := f.svc.Balance(f.db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, balance.Available)
	assert.Equal(t, 3, balance.TotalAcquired)

	cfg := f.svc.Config()
	assert.Equal(t, "sandbox", cfg.Gateway)
	assert.Equal(t, "COP", cfg.Currency)
	assert.Equal(t, 1, cfg.MinTokens)
	assert.Equal(t, 100, cfg.MaxTokens)

	freelancerUser, _ := testutil.CreateFreelancer(t, f.db)
	_, err = f.svc.Balance(f.db, freelancerUser.ID)
	requireAppError(t, err, http.StatusNotFound)
}
