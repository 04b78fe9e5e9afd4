package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContentTemplate holds an advocacy letter/email template managed through
// the admin dashboard and served to subscribed customers.
type ContentTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Category  string    `gorm:"size:100" json:"category"`
	Active    bool      `json:"active"`
	UpdatedBy string    `gorm:"size:255" json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *ContentTemplate) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (ContentTemplate) TableName() string {
	return "content_templates"
}
