package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/modules/assignment/dto"
	assignmentRepo "anoa.com/edusphere/internal/modules/assignment/repository"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/internal/modules/counter"
	paymentRepo "anoa.com/edusphere/internal/modules/payment/repository"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type AssignmentService interface {
	CreateAssignment(ctx context.Context, email string, input dto.CreateAssignmentInput) (*dto.AssignmentResponse, error)
	GetClassAssignments(ctx context.Context, classID uuid.UUID) ([]*entity.Assignment, error)
	Submit(ctx context.Context, email string, input dto.CreateSubmissionInput) (*dto.SubmissionResponse, error)
}

type assignmentService struct {
	assignmentRepo assignmentRepo.AssignmentRepository
	submissionRepo assignmentRepo.SubmissionRepository
	classRepo      classRepo.ClassRepository
	paymentRepo    paymentRepo.PaymentRepository
	userRepo       userRepo.UserRepository
	counter        *counter.Updater
	sanitizer      *bluemonday.Policy
}

func NewAssignmentService(assignmentRepo assignmentRepo.AssignmentRepository, submissionRepo assignmentRepo.SubmissionRepository, classRepo classRepo.ClassRepository, paymentRepo paymentRepo.PaymentRepository, userRepo userRepo.UserRepository, counter *counter.Updater) AssignmentService {
	return &assignmentService{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		classRepo:      classRepo,
		paymentRepo:    paymentRepo,
		userRepo:       userRepo,
		counter:        counter,
		sanitizer:      bluemonday.UGCPolicy(),
	}
}

func (s *assignmentService) CreateAssignment(ctx context.Context, email string, input dto.CreateAssignmentInput) (*dto.AssignmentResponse, error) {
	classID, err := uuid.Parse(input.ClassID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	class, err := s.classRepo.FindByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if class.OwnerEmail != email {
		isAdmin, err := access.IsAdmin(ctx, s.userRepo, email)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, apperror.New(http.StatusForbidden, "only the class owner can add assignments", apperror.ErrForbidden)
		}
	}

	assignment := &entity.Assignment{
		ClassID:     classID,
		Title:       strings.TrimSpace(input.Title),
		Description: s.sanitizer.Sanitize(input.Description),
		Deadline:    input.Deadline,
	}

	_, count, err := s.counter.Record(ctx, classID, entity.CounterAssignment, func(ctx context.Context) (uuid.UUID, error) {
		if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
			return uuid.Nil, err
		}
		return assignment.ID, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.AssignmentResponse{Assignment: assignment, AssignmentCount: count}, nil
}

func (s *assignmentService) GetClassAssignments(ctx context.Context, classID uuid.UUID) ([]*entity.Assignment, error) {
	return s.assignmentRepo.FindByClass(ctx, classID)
}

func (s *assignmentService) Submit(ctx context.Context, email string, input dto.CreateSubmissionInput) (*dto.SubmissionResponse, error) {
	classID, err := uuid.Parse(input.ClassID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}
	assignmentID, err := uuid.Parse(input.AssignmentID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	assignment, err := s.assignmentRepo.FindByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.ClassID != classID {
		return nil, apperror.New(http.StatusBadRequest, "assignment does not belong to this class", apperror.ErrInvalidInput)
	}

	if _, err := s.paymentRepo.FindByPayerAndClass(ctx, email, classID); err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New(http.StatusForbidden, "not enrolled in this class", apperror.ErrForbidden)
		}
		return nil, err
	}

	submission := &entity.Submission{
		ClassID:      classID,
		AssignmentID: assignmentID,
		StudentEmail: email,
		Content:      s.sanitizer.Sanitize(input.Content),
	}

	_, count, err := s.counter.Record(ctx, classID, entity.CounterSubmission, func(ctx context.Context) (uuid.UUID, error) {
		if err := s.submissionRepo.Create(ctx, submission); err != nil {
			return uuid.Nil, err
		}
		return submission.ID, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.SubmissionResponse{Submission: submission, SubmissionCount: count}, nil
}
