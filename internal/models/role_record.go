package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
	// RoleNone is never persisted; it means no role record exists at all.
	RoleNone = ""
)

// RoleRecord maps an email to its role. Absence of a record means RoleNone;
// a record without an explicit role defaults to customer.
type RoleRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Role      string    `gorm:"size:20" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *RoleRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (RoleRecord) TableName() string {
	return "role_records"
}

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleCustomer
}
