package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment doubles as the enrollment record of PayerEmail in ClassID.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PayerEmail    string    `gorm:"size:100;not null;uniqueIndex:idx_payment_payer_class" json:"payer_email"`
	ClassID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_payment_payer_class" json:"class_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	TransactionID string    `gorm:"size:255" json:"transaction_id"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Assignment struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"class_id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type Submission struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID      uuid.UUID `gorm:"type:uuid;index;not null" json:"class_id"`
	AssignmentID uuid.UUID `gorm:"type:uuid;index;not null" json:"assignment_id"`
	StudentEmail string    `gorm:"size:100;not null" json:"student_email"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (s *Submission) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
