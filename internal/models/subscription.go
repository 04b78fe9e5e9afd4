package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscription is one record per email, created on payment confirmation.
// The sole access predicate is active && now < expiration_date.
type Subscription struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID     string    `gorm:"size:255;index" json:"customer_id"`
	Email          string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	PurchaseDate   time.Time `json:"purchase_date"`
	ExpirationDate time.Time `json:"expiration_date"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Subscription) TableName() string {
	return "subscriptions"
}
