package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleNone     = ""
	RolePending  = "pending"
	RoleTeacher  = "teacher"
	RoleAdmin    = "admin"
	RoleRejected = "rejected"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:100" json:"name"`
	PhotoURL  *string   `gorm:"type:text" json:"photo_url,omitempty"`
	Role      string    `gorm:"size:20;not null;default:''" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) IsTeacher() bool {
	return u != nil && u.Role == RoleTeacher
}
