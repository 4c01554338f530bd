package dto

import (
	"time"

	"freelink_backend/internal/models"
)

const (
	MinTokensPerPurchase = 1
	MaxTokensPerPurchase = 100
)

type PaymentConfigResponse struct {
	Gateway        string  `json:"gateway"`
	PublishableKey string  `json:"publishable_key"`
	TokenPriceUSD  float64 `json:"token_price_usd"`
	USDToCOPRate   float64 `json:"usd_to_cop_rate"`
	Currency       string  `json:"currency"`
	MinTokens      int     `json:"min_tokens"`
	MaxTokens      int     `json:"max_tokens"`
}

type BalanceResponse struct {
	Available     int `json:"available"`
	Used          int `json:"used"`
	TotalAcquired int `json:"total_acquired"`
}

type CreatePurchaseRequest struct {
	Tokens int `json:"tokens" validate:"required,gte=1,lte=100"`
}

type PurchaseResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
	Amount          int64  `json:"amount"` // major units of Currency
	Currency        string `json:"currency"`
	Tokens          int    `json:"tokens"`
}

type ConfirmPaymentResponse struct {
	Credited  bool `json:"credited"`
	Available int  `json:"available"`
}

type WebhookAck struct {
	Received bool `json:"received"`
}

type TransactionResponse struct {
	ID              string                   `json:"id"`
	Type            models.TransactionType   `json:"type"`
	Tokens          int                      `json:"tokens"`
	Amount          int64                    `json:"amount"`
	Currency        string                   `json:"currency,omitempty"`
	PaymentIntentID string                   `json:"payment_intent_id,omitempty"`
	Status          models.TransactionStatus `json:"status"`
	Description     string                   `json:"description,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

func NewBalanceResponse(b *models.TokenBalance) *BalanceResponse {
	return &BalanceResponse{
		Available:     b.Available,
		Used:          b.Used,
		TotalAcquired: b.Available + b.Used,
	}
}

func NewTransactionResponse(t *models.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID,
		Type:        t.Type,
		Tokens:      t.Tokens,
		Amount:      t.Amount,
		Currency:    t.Currency,
		Status:      t.Status,
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
	if t.PaymentIntentID != nil {
		resp.PaymentIntentID = *t.PaymentIntentID
	}
	return resp
}
