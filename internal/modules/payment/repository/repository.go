package repository

import (
	"context"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByPayerAndClass(ctx context.Context, email string, classID uuid.UUID) (*entity.Payment, error)
	FindByPayer(ctx context.Context, email string) ([]*entity.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(payment).Error)
}

func (r *paymentRepository) FindByPayerAndClass(ctx context.Context, email string, classID uuid.UUID) (*entity.Payment, error) {
	var payment entity.Payment
	if err := r.db.WithContext(ctx).
		Where("payer_email = ? AND class_id = ?", email, classID).
		First(&payment).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &payment, nil
}

func (r *paymentRepository) FindByPayer(ctx context.Context, email string) ([]*entity.Payment, error) {
	var payments []*entity.Payment
	if err := r.db.WithContext(ctx).
		Where("payer_email = ?", email).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}
