package repository

import (
	"context"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/pkg/apperror"
	"anoa.com/edusphere/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeachRequestRepository interface {
	Create(ctx context.Context, req *entity.TeachRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TeachRequest, error)
	FindByEmail(ctx context.Context, email string) (*entity.TeachRequest, error)
	FindAll(ctx context.Context, status string) ([]*entity.TeachRequest, error)
	// UpdateStatus moves the request from one status to another. It returns
	// ErrConflict when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error
}

type teachRequestRepository struct {
	db *gorm.DB
}

func NewTeachRequestRepository(db *gorm.DB) TeachRequestRepository {
	return &teachRequestRepository{db: db}
}

func (r *teachRequestRepository) Create(ctx context.Context, req *entity.TeachRequest) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(req).Error)
}

func (r *teachRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TeachRequest, error) {
	var req entity.TeachRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &req, nil
}

func (r *teachRequestRepository) FindByEmail(ctx context.Context, email string) (*entity.TeachRequest, error) {
	var req entity.TeachRequest
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&req).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &req, nil
}

func (r *teachRequestRepository) FindAll(ctx context.Context, status string) ([]*entity.TeachRequest, error) {
	var reqs []*entity.TeachRequest
	query := r.db.WithContext(ctx)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	return reqs, nil
}

func (r *teachRequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string) error {
	res := r.db.WithContext(ctx).Model(&entity.TeachRequest{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.TeachRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperror.ErrNotFound
	}
	return apperror.ErrConflict
}
