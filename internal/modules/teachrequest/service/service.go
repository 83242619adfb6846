package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"anoa.com/edusphere/internal/entity"
	notification "anoa.com/edusphere/internal/modules/notification/service"
	"anoa.com/edusphere/internal/modules/teachrequest/dto"
	teachRepo "anoa.com/edusphere/internal/modules/teachrequest/repository"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TeachRequestService interface {
	CreateRequest(ctx context.Context, email string, input dto.CreateTeachRequestInput) (*entity.TeachRequest, error)
	GetRequests(ctx context.Context, status string) ([]*entity.TeachRequest, error)
	GetMyRequest(ctx context.Context, email string) (*entity.TeachRequest, error)
	Resolve(ctx context.Context, id uuid.UUID, action string) (*dto.ResolveResponse, error)
	Resubmit(ctx context.Context, email string, id uuid.UUID) (*entity.TeachRequest, error)
}

type teachRequestService struct {
	teachRepo     teachRepo.TeachRequestRepository
	userRepo      userRepo.UserRepository
	notifications notification.NotificationService
	logger        *zap.Logger
}

func NewTeachRequestService(teachRepo teachRepo.TeachRequestRepository, userRepo userRepo.UserRepository, notifications notification.NotificationService, logger *zap.Logger) TeachRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &teachRequestService{
		teachRepo:     teachRepo,
		userRepo:      userRepo,
		notifications: notifications,
		logger:        logger,
	}
}

func conflict(msg string) error {
	return apperror.New(http.StatusConflict, msg, apperror.ErrConflict)
}

func (s *teachRequestService) CreateRequest(ctx context.Context, email string, input dto.CreateTeachRequestInput) (*entity.TeachRequest, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}
	if user != nil && (user.Role == entity.RoleTeacher || user.Role == entity.RoleAdmin) {
		return nil, conflict("user can already teach")
	}

	if _, err := s.teachRepo.FindByEmail(ctx, email); err == nil {
		return nil, conflict("a teach request already exists for this user")
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	req := &entity.TeachRequest{
		Email:      email,
		Name:       strings.TrimSpace(input.Name),
		PhotoURL:   input.PhotoURL,
		Title:      strings.TrimSpace(input.Title),
		Category:   strings.TrimSpace(input.Category),
		Experience: input.Experience,
		Status:     entity.TeachRequestPending,
	}
	if err := s.teachRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpsertRoleByEmail(ctx, email, entity.RolePending); err != nil {
		return nil, fmt.Errorf("failed to mark user pending: %w", err)
	}

	return req, nil
}

func (s *teachRequestService) GetRequests(ctx context.Context, status string) ([]*entity.TeachRequest, error) {
	return s.teachRepo.FindAll(ctx, status)
}

func (s *teachRequestService) GetMyRequest(ctx context.Context, email string) (*entity.TeachRequest, error) {
	return s.teachRepo.FindByEmail(ctx, email)
}

// Resolve moves a pending request to teacher (accept) or rejected (reject) and
// mirrors the outcome onto the requester's role. Repeating a resolution is a
// no-op; reversing one is a conflict.
func (s *teachRequestService) Resolve(ctx context.Context, id uuid.UUID, action string) (*dto.ResolveResponse, error) {
	var target string
	switch action {
	case dto.ActionAccept:
		target = entity.TeachRequestTeacher
	case dto.ActionReject:
		target = entity.TeachRequestRejected
	default:
		return nil, apperror.ErrInvalidInput
	}

	req, err := s.teachRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Status != entity.TeachRequestPending {
		return resolved(req, target)
	}

	err = s.teachRepo.UpdateStatus(ctx, id, entity.TeachRequestPending, target)
	if errors.Is(err, apperror.ErrConflict) {
		// another resolution landed between the read and the write
		current, err := s.teachRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return resolved(current, target)
	}
	if err != nil {
		return nil, err
	}

	if err := s.setRequesterRole(ctx, req.Email, target); err != nil {
		return nil, fmt.Errorf("failed to update requester role: %w", err)
	}
	req.Status = target

	s.notify(ctx, req)

	return &dto.ResolveResponse{
		Message: fmt.Sprintf("request %s", req.Status),
		Changed: true,
		Request: req,
	}, nil
}

// resolved reports a request that is no longer pending.
func resolved(req *entity.TeachRequest, target string) (*dto.ResolveResponse, error) {
	if req.Status == target {
		return &dto.ResolveResponse{
			Message: fmt.Sprintf("role is already %s", target),
			Request: req,
		}, nil
	}
	return nil, conflict(fmt.Sprintf("request is already %s", req.Status))
}

func (s *teachRequestService) Resubmit(ctx context.Context, email string, id uuid.UUID) (*entity.TeachRequest, error) {
	req, err := s.teachRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Email != email {
		return nil, apperror.New(http.StatusForbidden, "only the requester can resubmit", apperror.ErrForbidden)
	}
	if req.Status != entity.TeachRequestRejected {
		return nil, conflict(fmt.Sprintf("request is %s, only rejected requests can be resubmitted", req.Status))
	}

	err = s.teachRepo.UpdateStatus(ctx, id, entity.TeachRequestRejected, entity.TeachRequestPending)
	if errors.Is(err, apperror.ErrConflict) {
		return nil, conflict("request is no longer rejected")
	}
	if err != nil {
		return nil, err
	}
	if err := s.setRequesterRole(ctx, email, entity.RolePending); err != nil {
		return nil, fmt.Errorf("failed to mark user pending: %w", err)
	}
	req.Status = entity.TeachRequestPending

	return req, nil
}

// setRequesterRole mirrors a request status onto the requester. Admins keep
// their role whatever happens to a stale request.
func (s *teachRequestService) setRequesterRole(ctx context.Context, email, role string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	if user.IsAdmin() {
		s.logger.Info("requester is an admin, role left unchanged", zap.String("email", email), zap.String("request_status", role))
		return nil
	}
	return s.userRepo.UpsertRoleByEmail(ctx, email, role)
}

func (s *teachRequestService) notify(ctx context.Context, req *entity.TeachRequest) {
	msg := "Your request to teach has been approved"
	if req.Status == entity.TeachRequestRejected {
		msg = "Your request to teach has been rejected"
	}

	err := s.notifications.Notify(ctx, req.Email, notification.Notification{
		Type:    notification.TypeTeachRequest,
		Message: msg,
		RefID:   req.ID.String(),
		Status:  req.Status,
	})
	if err != nil {
		s.logger.Warn("failed to notify requester", zap.String("email", req.Email), zap.Error(err))
	}
}
