package repository

import (
	"context"

	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/pkg/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *entity.Assignment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error)
	FindByClass(ctx context.Context, classID uuid.UUID) ([]*entity.Assignment, error)
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	FindByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*entity.Submission, error)
}

type assignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.Assignment) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(assignment).Error)
}

func (r *assignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Assignment, error) {
	var assignment entity.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error; err != nil {
		return nil, database.TranslateError(err)
	}
	return &assignment, nil
}

func (r *assignmentRepository) FindByClass(ctx context.Context, classID uuid.UUID) ([]*entity.Assignment, error) {
	var assignments []*entity.Assignment
	if err := r.db.WithContext(ctx).
		Where("class_id = ?", classID).
		Order("created_at ASC").
		Find(&assignments).Error; err != nil {
		return nil, err
	}
	return assignments, nil
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(ctx context.Context, submission *entity.Submission) error {
	return database.TranslateError(r.db.WithContext(ctx).Create(submission).Error)
}

func (r *submissionRepository) FindByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*entity.Submission, error) {
	var submissions []*entity.Submission
	if err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		Order("created_at ASC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
