package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeachRequest statuses mirror the user roles they grant.
const (
	TeachRequestPending  = RolePending
	TeachRequestTeacher  = RoleTeacher
	TeachRequestRejected = RoleRejected
)

type TeachRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	PhotoURL   *string   `gorm:"type:text" json:"photo_url,omitempty"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Category   string    `gorm:"size:100" json:"category"`
	Experience string    `gorm:"size:50" json:"experience"`
	Status     string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *TeachRequest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
