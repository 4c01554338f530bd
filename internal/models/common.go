package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BaseModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a uuid so ids do not depend on a database extension.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// All lists every persisted model in dependency order, for AutoMigrate and schema reset.
func All() []interface{} {
	return []interface{}{
		&User{},
		&City{},
		&Company{},
		&Freelancer{},
		&Vacancy{},
		&Application{},
		&Rating{},
		&TokenBalance{},
		&Transaction{},
		&PaymentEvent{},
		&PasswordResetToken{},
	}
}
