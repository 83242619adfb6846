package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ClassStatusPending  = "pending"
	ClassStatusAccepted = "accepted"
	ClassStatusRejected = "rejected"
)

// Denormalized child counters on Class, named by column.
const (
	CounterEnroll     = "enroll_count"
	CounterAssignment = "assignment_count"
	CounterSubmission = "submission_count"
)

func IsCounter(field string) bool {
	switch field {
	case CounterEnroll, CounterAssignment, CounterSubmission:
		return true
	}
	return false
}

// CounterValue reads the named counter.
func (c *Class) CounterValue(field string) int64 {
	switch field {
	case CounterEnroll:
		return c.EnrollCount
	case CounterAssignment:
		return c.AssignmentCount
	case CounterSubmission:
		return c.SubmissionCount
	}
	return 0
}

type Class struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	OwnerEmail      string    `gorm:"size:100;index;not null" json:"owner_email"`
	OwnerName       string    `gorm:"size:100" json:"owner_name"`
	Price           float64   `gorm:"not null;default:0" json:"price"`
	Description     string    `gorm:"type:text" json:"description"`
	ImageURL        *string   `gorm:"type:text" json:"image_url,omitempty"`
	Status          string    `gorm:"size:20;index;not null;default:'pending'" json:"status"`
	EnrollCount     int64     `gorm:"not null;default:0;index" json:"enroll_count"`
	AssignmentCount int64     `gorm:"not null;default:0" json:"assignment_count"`
	SubmissionCount int64     `gorm:"not null;default:0" json:"submission_count"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Class) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
