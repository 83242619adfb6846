package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID     uuid.UUID `gorm:"type:uuid;index" json:"class_id"`
	ClassTitle  string    `gorm:"size:200" json:"class_title"`
	Email       string    `gorm:"size:100;not null" json:"email"`
	Name        string    `gorm:"size:100" json:"name"`
	PhotoURL    *string   `gorm:"type:text" json:"photo_url,omitempty"`
	Rating      int       `gorm:"not null" json:"rating"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
