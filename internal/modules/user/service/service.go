package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/modules/user/dto"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	"github.com/google/uuid"
)

type UserService interface {
	Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error)
	GetRole(ctx context.Context, callerEmail, email string) (*dto.RoleResponse, error)
	GetAllUsers(ctx context.Context, search string) ([]*entity.User, error)
	GetPublicUsers(ctx context.Context) ([]dto.PublicUserResponse, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role string) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	// IsAdmin reports whether the user with email holds the admin role.
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type userService struct {
	userRepo userRepo.UserRepository
}

func NewUserService(userRepo userRepo.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register creates the user on first sign-in and returns the stored record on later ones.
func (s *userService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterResponse, error) {
	email := strings.TrimSpace(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return &dto.RegisterResponse{Message: "user already exists", User: existing}, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user := &entity.User{
		Email:    email,
		Name:     strings.TrimSpace(input.Name),
		PhotoURL: input.PhotoURL,
		Role:     entity.RoleNone,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent sign-in for the same email
		if errors.Is(err, apperror.ErrConflict) {
			existing, ferr := s.userRepo.FindByEmail(ctx, email)
			if ferr == nil {
				return &dto.RegisterResponse{Message: "user already exists", User: existing}, nil
			}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &dto.RegisterResponse{Message: "user created", User: user, Created: true}, nil
}

func (s *userService) GetRole(ctx context.Context, callerEmail, email string) (*dto.RoleResponse, error) {
	email = strings.TrimSpace(email)
	if callerEmail != email {
		isAdmin, err := s.IsAdmin(ctx, callerEmail)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, apperror.ErrForbidden
		}
	}

	res := &dto.RoleResponse{Email: email}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return res, nil
		}
		return nil, err
	}

	res.Role = user.Role
	res.Admin = user.IsAdmin()
	res.Teacher = user.IsTeacher()
	return res, nil
}

func (s *userService) GetAllUsers(ctx context.Context, search string) ([]*entity.User, error) {
	return s.userRepo.FindAll(ctx, strings.TrimSpace(search))
}

func (s *userService) GetPublicUsers(ctx context.Context) ([]dto.PublicUserResponse, error) {
	users, err := s.userRepo.FindByRoles(ctx, entity.RoleTeacher, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	res := make([]dto.PublicUserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, dto.ToPublicUser(u))
	}
	return res, nil
}

func (s *userService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*entity.User, error) {
	if role == "" {
		role = entity.RoleAdmin
	}

	if err := s.userRepo.UpdateRole(ctx, id, role); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}

func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	return access.IsAdmin(ctx, s.userRepo, email)
}
