package repository

import (
	"context"
	"fmt"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/pkg/apperror"
	"anoa.com/edusphere/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassFilter struct {
	OwnerEmail string
	Status     string
	Search     string
	// ByEnrollment orders by enroll_count descending instead of newest first.
	ByEnrollment bool
	Limit        int
}

type ClassRepository interface {
	Create(ctx context.Context, class *entity.Class) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error)
	FindAll(ctx context.Context, filter ClassFilter) ([]*entity.Class, error)
	// Update writes the editable fields only; status and counters are left untouched.
	Update(ctx context.Context, class *entity.Class) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	// IncrementCounter atomically adds one to the named counter and returns the new value.
	IncrementCounter(ctx context.Context, id uuid.UUID, field string) (int64, error)
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(ctx context.Context, class *entity.Class) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(class).Error)
}

func (r *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	var class entity.Class
	if err := r.db.WithContext(ctx).First(&class, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &class, nil
}

func (r *classRepository) FindAll(ctx context.Context, filter ClassFilter) ([]*entity.Class, error) {
	var classes []*entity.Class
	query := r.db.WithContext(ctx)

	if filter.OwnerEmail != "" {
		query = query.Where("owner_email = ?", filter.OwnerEmail)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.ByEnrollment {
		query = query.Order("enroll_count DESC").Order("created_at ASC")
	} else {
		query = query.Order("created_at DESC")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) Update(ctx context.Context, class *entity.Class) error {
	res := r.db.WithContext(ctx).Model(&entity.Class{}).Where("id = ?", class.ID).Updates(map[string]interface{}{
		"title":       class.Title,
		"owner_name":  class.OwnerName,
		"price":       class.Price,
		"description": class.Description,
		"image_url":   class.ImageURL,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *classRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&entity.Class{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *classRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&entity.Class{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

func (r *classRepository) IncrementCounter(ctx context.Context, id uuid.UUID, field string) (int64, error) {
	if !entity.IsCounter(field) {
		return 0, fmt.Errorf("unknown class counter %q", field)
	}

	// UPDATE classes SET <field> = <field> + 1 WHERE id = ? RETURNING <field>
	var class entity.Class
	res := r.db.WithContext(ctx).Model(&class).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: field}}}).
		Where("id = ?", id).
		UpdateColumn(field, gorm.Expr(field+" + ?", 1))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, apperror.ErrNotFound
	}
	return class.CounterValue(field), nil
}
