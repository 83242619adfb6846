package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/entity"
	"anoa.com/edusphere/internal/modules/class/dto"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	search "anoa.com/edusphere/internal/modules/search/service"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	commonDto "anoa.com/edusphere/pkg/dto"
	"anoa.com/edusphere/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const (
	imageFolder    = "edusphere/classes"
	highlightLimit = 6
)

type ClassService interface {
	CreateClass(ctx context.Context, email string, input dto.CreateClassInput, image *commonDto.ImageFile) (*entity.Class, error)
	GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error)
	GetOwnedClasses(ctx context.Context, callerEmail, owner string) ([]*entity.Class, error)
	GetAllClasses(ctx context.Context, filter dto.ClassListFilter) ([]*entity.Class, error)
	UpdateClass(ctx context.Context, email string, id uuid.UUID, input dto.UpdateClassInput, image *commonDto.ImageFile) (*entity.Class, error)
	DeleteClass(ctx context.Context, email string, id uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Class, error)
	GetPublicClasses(ctx context.Context) ([]*entity.Class, error)
	GetHighlightedClasses(ctx context.Context) ([]*entity.Class, error)
	SearchClasses(ctx context.Context, query string, limit int) ([]*entity.Class, error)
}

type classService struct {
	classRepo    classRepo.ClassRepository
	userRepo     userRepo.UserRepository
	imageStorage storage.ImageStorage
	search       search.ClassSearch
	sanitizer    *bluemonday.Policy
	logger       *zap.Logger
}

// NewClassService wires the class use cases. imageStorage may be nil, in which
// case uploads are rejected and only image URLs are accepted.
func NewClassService(classRepo classRepo.ClassRepository, userRepo userRepo.UserRepository, imageStorage storage.ImageStorage, search search.ClassSearch, logger *zap.Logger) ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &classService{
		classRepo:    classRepo,
		userRepo:     userRepo,
		imageStorage: imageStorage,
		search:       search,
		sanitizer:    bluemonday.UGCPolicy(),
		logger:       logger,
	}
}

func (s *classService) uploadImage(ctx context.Context, image *commonDto.ImageFile) (*string, error) {
	if image == nil {
		return nil, nil
	}
	if s.imageStorage == nil {
		return nil, apperror.New(http.StatusBadRequest, "image uploads are not configured", apperror.ErrBadRequest)
	}

	url, err := s.imageStorage.UploadImage(ctx, image.Reader, imageFolder, image.FileName)
	if err != nil {
		return nil, fmt.Errorf("failed to upload class image: %w", err)
	}
	return &url, nil
}

func (s *classService) deleteImage(ctx context.Context, url *string) {
	if s.imageStorage == nil || url == nil || *url == "" {
		return
	}
	if err := s.imageStorage.DeleteImage(ctx, *url); err != nil {
		s.logger.Warn("failed to delete class image", zap.String("url", *url), zap.Error(err))
	}
}

// ownedClass loads a class the caller may modify: its owner or an admin.
func (s *classService) ownedClass(ctx context.Context, email string, id uuid.UUID) (*entity.Class, error) {
	class, err := s.classRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if class.OwnerEmail == email {
		return class, nil
	}

	isAdmin, err := access.IsAdmin(ctx, s.userRepo, email)
	if err != nil {
		return nil, err
	}
	if !isAdmin {
		return nil, apperror.New(http.StatusForbidden, "only the class owner can modify this class", apperror.ErrForbidden)
	}
	return class, nil
}

func (s *classService) CreateClass(ctx context.Context, email string, input dto.CreateClassInput, image *commonDto.ImageFile) (*entity.Class, error) {
	ownerName := strings.TrimSpace(input.OwnerName)
	if ownerName == "" {
		if user, err := s.userRepo.FindByEmail(ctx, email); err == nil {
			ownerName = user.Name
		}
	}

	imageURL := input.ImageURL
	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		imageURL = uploaded
	}

	class := &entity.Class{
		Title:       strings.TrimSpace(input.Title),
		OwnerEmail:  email,
		OwnerName:   ownerName,
		Price:       input.Price,
		Description: s.sanitizer.Sanitize(input.Description),
		ImageURL:    imageURL,
		Status:      entity.ClassStatusPending,
	}

	if err := s.classRepo.Create(ctx, class); err != nil {
		s.deleteImage(ctx, uploaded)
		return nil, fmt.Errorf("failed to create class: %w", err)
	}

	return class, nil
}

func (s *classService) GetClass(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	return s.classRepo.FindByID(ctx, id)
}

func (s *classService) GetOwnedClasses(ctx context.Context, callerEmail, owner string) ([]*entity.Class, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		owner = callerEmail
	}
	if owner != callerEmail {
		isAdmin, err := access.IsAdmin(ctx, s.userRepo, callerEmail)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, apperror.ErrForbidden
		}
	}

	return s.classRepo.FindAll(ctx, classRepo.ClassFilter{OwnerEmail: owner})
}

func (s *classService) GetAllClasses(ctx context.Context, filter dto.ClassListFilter) ([]*entity.Class, error) {
	return s.classRepo.FindAll(ctx, classRepo.ClassFilter{
		OwnerEmail: strings.TrimSpace(filter.Owner),
		Status:     filter.Status,
		Search:     strings.TrimSpace(filter.Search),
	})
}

func (s *classService) UpdateClass(ctx context.Context, email string, id uuid.UUID, input dto.UpdateClassInput, image *commonDto.ImageFile) (*entity.Class, error) {
	class, err := s.ownedClass(ctx, email, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		class.Title = strings.TrimSpace(*input.Title)
	}
	if input.Price != nil {
		class.Price = *input.Price
	}
	if input.Description != nil {
		class.Description = s.sanitizer.Sanitize(*input.Description)
	}
	if input.OwnerName != nil {
		class.OwnerName = strings.TrimSpace(*input.OwnerName)
	}

	oldImage := class.ImageURL
	if input.ImageURL != nil {
		class.ImageURL = input.ImageURL
	}
	uploaded, err := s.uploadImage(ctx, image)
	if err != nil {
		return nil, err
	}
	if uploaded != nil {
		class.ImageURL = uploaded
	}

	if err := s.classRepo.Update(ctx, class); err != nil {
		s.deleteImage(ctx, uploaded)
		return nil, err
	}
	if uploaded != nil {
		s.deleteImage(ctx, oldImage)
	}

	if class.Status == entity.ClassStatusAccepted {
		if err := s.search.IndexClass(ctx, class); err != nil {
			s.logger.Warn("failed to reindex class", zap.String("class_id", id.String()), zap.Error(err))
		}
	}

	return class, nil
}

func (s *classService) DeleteClass(ctx context.Context, email string, id uuid.UUID) error {
	class, err := s.ownedClass(ctx, email, id)
	if err != nil {
		return err
	}

	if err := s.classRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.deleteImage(ctx, class.ImageURL)
	if err := s.search.RemoveClass(ctx, id); err != nil {
		s.logger.Warn("failed to remove class from index", zap.String("class_id", id.String()), zap.Error(err))
	}
	return nil
}

func (s *classService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*entity.Class, error) {
	if status != entity.ClassStatusAccepted && status != entity.ClassStatusRejected {
		return nil, apperror.ErrInvalidInput
	}

	if err := s.classRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	class, err := s.classRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == entity.ClassStatusAccepted {
		err = s.search.IndexClass(ctx, class)
	} else {
		err = s.search.RemoveClass(ctx, id)
	}
	if err != nil {
		s.logger.Warn("failed to sync class index", zap.String("class_id", id.String()), zap.String("status", status), zap.Error(err))
	}

	return class, nil
}

func (s *classService) GetPublicClasses(ctx context.Context) ([]*entity.Class, error) {
	return s.classRepo.FindAll(ctx, classRepo.ClassFilter{Status: entity.ClassStatusAccepted})
}

func (s *classService) GetHighlightedClasses(ctx context.Context) ([]*entity.Class, error) {
	return s.classRepo.FindAll(ctx, classRepo.ClassFilter{
		Status:       entity.ClassStatusAccepted,
		ByEnrollment: true,
		Limit:        highlightLimit,
	})
}

func (s *classService) SearchClasses(ctx context.Context, query string, limit int) ([]*entity.Class, error) {
	return s.search.SearchClasses(ctx, query, limit)
}
