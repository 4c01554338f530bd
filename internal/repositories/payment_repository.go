package repositories

import (
	"freelink_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const transactionHistoryLimit = 50

type PaymentRepository interface {
	// Balances
	FindBalance(db *gorm.DB, companyID string) (*models.TokenBalance, error)
	CreateBalance(db *gorm.DB, balance *models.TokenBalance) error
	GetOrCreateBalance(db *gorm.DB, companyID string, initial int) (*models.TokenBalance, error)
	// DebitToken spends one token. It reports false when no token was available.
	DebitToken(db *gorm.DB, companyID string) (bool, error)
	CreditTokens(db *gorm.DB, companyID string, tokens int) error
	DeleteBalance(db *gorm.DB, companyID string) error

	// Ledger
	CreateTransaction(db *gorm.DB, tx *models.Transaction) error
	FindTransactionByIntent(db *gorm.DB, intentID string) (*models.Transaction, error)
	// CompleteIfPending flips a pending purchase to completed. Exactly one caller ever sees true per intent.
	CompleteIfPending(db *gorm.DB, intentID string) (bool, error)
	FailIfPending(db *gorm.DB, intentID string) (bool, error)
	ListTransactions(db *gorm.DB, companyID string) ([]models.Transaction, error)
	DeleteTransactions(db *gorm.DB, companyID string) error

	// Webhook events
	RecordEvent(db *gorm.DB, event *models.PaymentEvent) error
}

type paymentRepository struct{}

func NewPaymentRepository() PaymentRepository {
	return &paymentRepository{}
}

func (r *paymentRepository) FindBalance(db *gorm.DB, companyID string) (*models.TokenBalance, error) {
	var balance models.TokenBalance
	if err := db.Where("company_id = ?", companyID).First(&balance).Error; err != nil {
		return nil, notFound(err, ErrBalanceNotFound)
	}
	return &balance, nil
}

func (r *paymentRepository) CreateBalance(db *gorm.DB, balance *models.TokenBalance) error {
	return db.Create(balance).Error
}

func (r *paymentRepository) GetOrCreateBalance(db *gorm.DB, companyID string, initial int) (*models.TokenBalance, error) {
	balance := models.TokenBalance{CompanyID: companyID, Available: initial}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}},
		DoNothing: true,
	}).Create(&balance).Error
	if err != nil {
		return nil, err
	}
	return r.FindBalance(db, companyID)
}

func (r *paymentRepository) DebitToken(db *gorm.DB, companyID string) (bool, error) {
	result := db.Model(&models.TokenBalance{}).
		Where("company_id = ? AND available >= ?", companyID, 1).
		Updates(map[string]interface{}{
			"available": gorm.Expr("available - ?", 1),
			"used":      gorm.Expr("used + ?", 1),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *paymentRepository) CreditTokens(db *gorm.DB, companyID string, tokens int) error {
	result := db.Model(&models.TokenBalance{}).
		Where("company_id = ?", companyID).
		Update("available", gorm.Expr("available + ?", tokens))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}
	return r.CreateBalance(db, &models.TokenBalance{CompanyID: companyID, Available: tokens})
}

func (r *paymentRepository) DeleteBalance(db *gorm.DB, companyID string) error {
	return db.Where("company_id = ?", companyID).Delete(&models.TokenBalance{}).Error
}

func (r *paymentRepository) CreateTransaction(db *gorm.DB, tx *models.Transaction) error {
	return db.Create(tx).Error
}

func (r *paymentRepository) FindTransactionByIntent(db *gorm.DB, intentID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := db.Where("payment_intent_id = ?", intentID).First(&tx).Error; err != nil {
		return nil, notFound(err, ErrTransactionMissing)
	}
	return &tx, nil
}

func (r *paymentRepository) transitionIfPending(db *gorm.DB, intentID string, to models.TransactionStatus) (bool, error) {
	result := db.Model(&models.Transaction{}).
		Where("payment_intent_id = ? AND status = ?", intentID, models.TransactionStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *paymentRepository) CompleteIfPending(db *gorm.DB, intentID string) (bool, error) {
	return r.transitionIfPending(db, intentID, models.TransactionStatusCompleted)
}

func (r *paymentRepository) FailIfPending(db *gorm.DB, intentID string) (bool, error) {
	return r.transitionIfPending(db, intentID, models.TransactionStatusFailed)
}

func (r *paymentRepository) ListTransactions(db *gorm.DB, companyID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := db.Where("company_id = ?", companyID).
		Order("created_at DESC").
		Limit(transactionHistoryLimit).
		Find(&txs).Error
	return txs, err
}

func (r *paymentRepository) DeleteTransactions(db *gorm.DB, companyID string) error {
	return db.Where("company_id = ?", companyID).Delete(&models.Transaction{}).Error
}

func (r *paymentRepository) RecordEvent(db *gorm.DB, event *models.PaymentEvent) error {
	if err := db.Create(event).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrEventAlreadySeen
		}
		return err
	}
	return nil
}
