package dto

import (
	"anoa.com/edusphere/internal/entity"
	"github.com/google/uuid"
)

type CreateIntentInput struct {
	Price float64 `json:"price" binding:"required"`
}

type IntentResponse struct {
	ClientSecret string `json:"client_secret"`
	Reference    string `json:"reference"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type CreatePaymentInput struct {
	ClassID       string  `json:"class_id" binding:"required,uuid"`
	Amount        float64 `json:"amount" binding:"gte=0"`
	TransactionID string  `json:"transaction_id" binding:"max=255"`
}

type PaymentResponse struct {
	Payment     *entity.Payment `json:"payment"`
	EnrollCount int64           `json:"enroll_count"`
}

type ClassSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	OwnerName string    `json:"owner_name"`
	ImageURL  *string   `json:"image_url,omitempty"`
}

type EnrollmentResponse struct {
	*entity.Payment
	// Class is nil when the class has since been deleted.
	Class *ClassSummary `json:"class"`
}

type EnrollmentFilter struct {
	Student string `form:"student"`
}
