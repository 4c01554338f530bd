package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"freelink_backend/internal/logger"
	"freelink_backend/internal/metrics"
	"freelink_backend/internal/models"
	"freelink_backend/internal/payment"
	"freelink_backend/internal/repositories"
	"freelink_backend/internal/services/dto"
	"freelink_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentSettings struct {
	TokenPriceUSD float64
	USDToCOPRate  float64
	Currency      string
	WelcomeTokens int
}

type PaymentService interface {
	Config() *dto.PaymentConfigResponse
	Balance(db *gorm.DB, userID string) (*dto.BalanceResponse, error)
	CreatePurchase(ctx context.Context, db *gorm.DB, userID string, tokens int) (*dto.PurchaseResponse, error)
	// HandleWebhook never fails: bad signatures, replays and processing errors are logged and dropped
	HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string)
	ConfirmPayment(ctx context.Context, db *gorm.DB, userID, intentID string) (*dto.ConfirmPaymentResponse, error)
	History(db *gorm.DB, userID string) ([]*dto.TransactionResponse, error)
}

type PaymentServiceImpl struct {
	profileRepo repositories.ProfileRepository
	paymentRepo repositories.PaymentRepository
	gateway     payment.Gateway
	deduper     payment.Deduper
	settings    PaymentSettings
}

func NewPaymentService(
	profileRepo repositories.ProfileRepository,
	paymentRepo repositories.PaymentRepository,
	gateway payment.Gateway,
	deduper payment.Deduper,
	settings PaymentSettings,
) PaymentService {
	if deduper == nil {
		deduper = payment.NoopDeduper{}
	}
	if settings.Currency == "" {
		settings.Currency = "COP"
	}
	return &PaymentServiceImpl{
		profileRepo: profileRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		deduper:     deduper,
		settings:    settings,
	}
}

func (s *PaymentServiceImpl) Config() *dto.PaymentConfigResponse {
	return &dto.PaymentConfigResponse{
		Gateway:        s.gateway.Name(),
		PublishableKey: s.gateway.PublishableKey(),
		TokenPriceUSD:  s.settings.TokenPriceUSD,
		USDToCOPRate:   s.settings.USDToCOPRate,
		Currency:       s.settings.Currency,
		MinTokens:      dto.MinTokensPerPurchase,
		MaxTokens:      dto.MaxTokensPerPurchase,
	}
}

func (s *PaymentServiceImpl) Balance(db *gorm.DB, userID string) (*dto.BalanceResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	balance, err := s.paymentRepo.GetOrCreateBalance(db, company.ID, s.settings.WelcomeTokens)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewBalanceResponse(balance), nil
}

// priceOf returns the purchase amount in major units of the configured currency
func (s *PaymentServiceImpl) priceOf(tokens int) int64 {
	return int64(math.Round(float64(tokens) * s.settings.TokenPriceUSD * s.settings.USDToCOPRate))
}

func (s *PaymentServiceImpl) CreatePurchase(ctx context.Context, db *gorm.DB, userID string, tokens int) (*dto.PurchaseResponse, error) {
	if tokens < dto.MinTokensPerPurchase || tokens > dto.MaxTokensPerPurchase {
		return nil, apperrors.ErrInvalidTokenAmount
	}

	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	amount := s.priceOf(tokens)
	metadata := map[string]string{
		"company_id": company.ID,
		"tokens":     strconv.Itoa(tokens),
		"user_id":    userID,
	}
	description := fmt.Sprintf("Purchase of %d tokens", tokens)

	intent, err := s.gateway.CreateIntent(ctx, payment.IntentRequest{
		Amount:      amount * 100,
		Currency:    s.settings.Currency,
		Description: description,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, apperrors.ExternalServiceError(err, "payment", "Failed to create payment")
	}

	rawMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	intentID := intent.ID
	if err := s.paymentRepo.CreateTransaction(db, &models.Transaction{
		CompanyID:       company.ID,
		Type:            models.TransactionTypePurchase,
		Tokens:          tokens,
		Amount:          amount,
		Currency:        s.settings.Currency,
		PaymentIntentID: &intentID,
		Status:          models.TransactionStatusPending,
		Description:     description,
		Metadata:        datatypes.JSON(rawMetadata),
	}); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Payment intent created", "company_id", company.ID, "intent_id", intent.ID, "tokens", tokens, "amount", amount)
	return &dto.PurchaseResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
		Amount:          amount,
		Currency:        s.settings.Currency,
		Tokens:          tokens,
	}, nil
}

// credit completes the pending purchase for intentID and adds its tokens.
// Only the caller that flips the row from pending credits anything.
func (s *PaymentServiceImpl) credit(tx *gorm.DB, intentID, source string) (bool, error) {
	purchase, err := s.paymentRepo.FindTransactionByIntent(tx, intentID)
	if err != nil {
		return false, err
	}
	completed, err := s.paymentRepo.CompleteIfPending(tx, intentID)
	if err != nil {
		return false, err
	}
	if !completed {
		return false, nil
	}
	if err := s.paymentRepo.CreditTokens(tx, purchase.CompanyID, purchase.Tokens); err != nil {
		return false, err
	}
	metrics.TokensCreditedTotal.WithLabelValues(source).Add(float64(purchase.Tokens))
	return true, nil
}

func (s *PaymentServiceImpl) HandleWebhook(ctx context.Context, db *gorm.DB, payload []byte, signature string) {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		result := "error"
		if errors.Is(err, payment.ErrInvalidSignature) {
			result = "invalid_signature"
		}
		metrics.WebhookEventsTotal.WithLabelValues(result).Inc()
		logger.CtxWarn(ctx, "Rejected payment webhook", "error", err)
		return
	}

	log := logger.FromContext(ctx).With("event_id", event.ID, "event_type", event.Type)

	seen, err := s.deduper.IsDuplicate(ctx, event.ID)
	if err != nil {
		log.Warn("Webhook dedup lookup failed", "error", err)
	}
	if seen {
		metrics.WebhookEventsTotal.WithLabelValues("duplicate").Inc()
		log.Debug("Webhook event already processed")
		return
	}

	result, err := s.processEvent(db, event, payload)
	if err != nil {
		if errors.Is(err, repositories.ErrEventAlreadySeen) {
			result = "duplicate"
		} else {
			metrics.WebhookEventsTotal.WithLabelValues("error").Inc()
			log.Error("Failed to process payment webhook", "error", err)
			return
		}
	}

	if err := s.deduper.Mark(ctx, event.ID); err != nil {
		log.Warn("Failed to mark webhook event", "error", err)
	}
	metrics.WebhookEventsTotal.WithLabelValues(result).Inc()
	log.Info("Payment webhook handled", "result", result)
}

// processEvent records the event and applies it in one transaction
func (s *PaymentServiceImpl) processEvent(db *gorm.DB, event *payment.WebhookEvent, payload []byte) (string, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return "", tx.Error
	}
	defer tx.Rollback()

	record := &models.PaymentEvent{
		EventID: event.ID,
		Type:    event.Type,
		Payload: datatypes.JSON(payload),
	}
	if event.Intent != nil {
		record.PaymentIntentID = event.Intent.ID
	}
	if err := s.paymentRepo.RecordEvent(tx, record); err != nil {
		return "", err
	}

	result := "ignored"
	if event.Intent != nil {
		switch event.Type {
		case payment.EventIntentSucceeded:
			credited, err := s.credit(tx, event.Intent.ID, "webhook")
			if err != nil && !errors.Is(err, repositories.ErrTransactionMissing) {
				return "", err
			}
			if credited {
				result = "processed"
			}
		case payment.EventIntentFailed:
			failed, err := s.paymentRepo.FailIfPending(tx, event.Intent.ID)
			if err != nil {
				return "", err
			}
			if failed {
				result = "processed"
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		return "", err
	}
	return result, nil
}

func (s *PaymentServiceImpl) ConfirmPayment(ctx context.Context, db *gorm.DB, userID, intentID string) (*dto.ConfirmPaymentResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}

	purchase, err := s.paymentRepo.FindTransactionByIntent(db, intentID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionMissing) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if purchase.CompanyID != company.ID {
		return nil, apperrors.ErrPaymentNotFound
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		if errors.Is(err, payment.ErrIntentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.ExternalServiceError(err, "payment", "Failed to retrieve payment")
	}
	if intent.Status != payment.IntentSucceeded {
		return nil, apperrors.ErrPaymentNotSucceeded.WithDetails(map[string]interface{}{
			"status": intent.Status,
		})
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	credited, err := s.credit(tx, intentID, "confirm")
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	balance, err := s.paymentRepo.GetOrCreateBalance(tx, company.ID, s.settings.WelcomeTokens)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := commit(tx); err != nil {
		return nil, err
	}

	if credited {
		logger.CtxInfo(ctx, "Tokens credited", "company_id", company.ID, "intent_id", intentID, "tokens", purchase.Tokens)
	}
	return &dto.ConfirmPaymentResponse{
		Credited:  credited,
		Available: balance.Available,
	}, nil
}

func (s *PaymentServiceImpl) History(db *gorm.DB, userID string) ([]*dto.TransactionResponse, error) {
	company, err := loadCompany(db, s.profileRepo, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.paymentRepo.ListTransactions(db, company.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.TransactionResponse, 0, len(txs))
	for i := range txs {
		out = append(out, dto.NewTransactionResponse(&txs[i]))
	}
	return out, nil
}
