package service

import (
	"context"
	"strings"

	"anoa.com/edusphere/internal/entity"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/internal/modules/feedback/dto"
	feedbackRepo "anoa.com/edusphere/internal/modules/feedback/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type FeedbackService interface {
	CreateFeedback(ctx context.Context, email string, input dto.CreateFeedbackInput) (*entity.Feedback, error)
	GetFeedback(ctx context.Context) ([]*entity.Feedback, error)
}

type feedbackService struct {
	feedbackRepo feedbackRepo.FeedbackRepository
	classRepo    classRepo.ClassRepository
	sanitizer    *bluemonday.Policy
}

func NewFeedbackService(feedbackRepo feedbackRepo.FeedbackRepository, classRepo classRepo.ClassRepository) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		classRepo:    classRepo,
		sanitizer:    bluemonday.StrictPolicy(),
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, email string, input dto.CreateFeedbackInput) (*entity.Feedback, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperror.ErrInvalidInput
	}
	classID, err := uuid.Parse(input.ClassID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	class, err := s.classRepo.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	feedback := &entity.Feedback{
		ClassID:     classID,
		ClassTitle:  class.Title,
		Email:       email,
		Name:        strings.TrimSpace(input.Name),
		PhotoURL:    input.PhotoURL,
		Rating:      input.Rating,
		Description: strings.TrimSpace(s.sanitizer.Sanitize(input.Description)),
	}
	if err := s.feedbackRepo.Create(ctx, feedback); err != nil {
		return nil, err
	}

	return feedback, nil
}

func (s *feedbackService) GetFeedback(ctx context.Context) ([]*entity.Feedback, error) {
	return s.feedbackRepo.FindAll(ctx)
}
