package models

import (
	"gorm.io/datatypes"
)

// TokenBalance tracks a company's publishing credits. Available never goes below zero.
type TokenBalance struct {
	BaseModel
	CompanyID string `gorm:"type:varchar(36);uniqueIndex;not null"`
	Available int    `gorm:"not null;default:0"`
	Used      int    `gorm:"not null;default:0"`
}

// Transaction is an append-only ledger row for token purchases, uses and refunds.
type Transaction struct {
	BaseModel
	CompanyID       string            `gorm:"type:varchar(36);not null;index"`
	Type            TransactionType   `gorm:"type:varchar(20);not null"`
	Tokens          int               `gorm:"not null"`
	Amount          int64             `gorm:"not null;default:0"`
	Currency        string            `gorm:"type:varchar(3)"`
	PaymentIntentID *string           `gorm:"type:varchar(255);uniqueIndex"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null"`
	Description     string            `gorm:"type:varchar(255)"`
	Metadata        datatypes.JSON
}

// PaymentEvent records a processed gateway webhook event.
type PaymentEvent struct {
	BaseModel
	EventID         string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Type            string `gorm:"type:varchar(100);not null"`
	PaymentIntentID string `gorm:"type:varchar(255);index"`
	Payload         datatypes.JSON
}
