package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/entity"
	classRepo "anoa.com/edusphere/internal/modules/class/repository"
	"anoa.com/edusphere/internal/modules/counter"
	"anoa.com/edusphere/internal/modules/payment/dto"
	paymentRepo "anoa.com/edusphere/internal/modules/payment/repository"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"anoa.com/edusphere/pkg/apperror"
	"anoa.com/edusphere/pkg/payment"
	"anoa.com/edusphere/pkg/ratelimit"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const checkoutAction = "checkout"

type PaymentService interface {
	CreateIntent(ctx context.Context, email string, price float64) (*dto.IntentResponse, error)
	RecordPayment(ctx context.Context, email string, input dto.CreatePaymentInput) (*dto.PaymentResponse, error)
	GetEnrollments(ctx context.Context, callerEmail, student string) ([]dto.EnrollmentResponse, error)
}

type Config struct {
	Currency       string
	CheckoutWindow time.Duration
}

type paymentService struct {
	paymentRepo paymentRepo.PaymentRepository
	classRepo   classRepo.ClassRepository
	userRepo    userRepo.UserRepository
	counter     *counter.Updater
	processor   payment.Processor
	limiter     *ratelimit.Limiter
	cfg         Config
	logger      *zap.Logger
}

// NewPaymentService wires checkout and enrollment. processor may be nil when no
// provider is configured; checkout then fails with 503.
func NewPaymentService(paymentRepo paymentRepo.PaymentRepository, classRepo classRepo.ClassRepository, userRepo userRepo.UserRepository, counter *counter.Updater, processor payment.Processor, limiter *ratelimit.Limiter, cfg Config, logger *zap.Logger) PaymentService {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &paymentService{
		paymentRepo: paymentRepo,
		classRepo:   classRepo,
		userRepo:    userRepo,
		counter:     counter,
		processor:   processor,
		limiter:     limiter,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *paymentService) CreateIntent(ctx context.Context, email string, price float64) (*dto.IntentResponse, error) {
	amount, err := payment.ToMinorUnits(price)
	if err != nil {
		return nil, apperror.New(http.StatusBadRequest, "price must be a positive amount", apperror.ErrInvalidInput)
	}
	if s.processor == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "payments are not configured", nil)
	}

	allowed, err := s.limiter.Allow(ctx, email, checkoutAction, s.cfg.CheckoutWindow)
	if err != nil {
		// redis trouble must not block checkout
		s.logger.Warn("checkout rate limit check failed", zap.String("email", email), zap.Error(err))
	} else if !allowed {
		return nil, apperror.ErrRateLimitExceeded
	}

	intent, err := s.processor.CreateIntent(ctx, payment.IntentRequest{
		AmountMinor: amount,
		Currency:    s.cfg.Currency,
		Email:       email,
	})
	if err != nil {
		if errors.Is(err, payment.ErrInvalidAmount) {
			return nil, apperror.New(http.StatusBadRequest, "price is too small for the payment provider", apperror.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %v", apperror.ErrPaymentProvider, err)
	}

	return &dto.IntentResponse{
		ClientSecret: intent.ClientSecret,
		Reference:    intent.Reference,
		Amount:       amount,
		Currency:     s.cfg.Currency,
	}, nil
}

func (s *paymentService) RecordPayment(ctx context.Context, email string, input dto.CreatePaymentInput) (*dto.PaymentResponse, error) {
	classID, err := uuid.Parse(input.ClassID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	record := &entity.Payment{
		PayerEmail:    email,
		ClassID:       classID,
		Amount:        input.Amount,
		TransactionID: strings.TrimSpace(input.TransactionID),
	}

	_, count, err := s.counter.Record(ctx, classID, entity.CounterEnroll, func(ctx context.Context) (uuid.UUID, error) {
		if _, err := s.paymentRepo.FindByPayerAndClass(ctx, email, classID); err == nil {
			return uuid.Nil, apperror.New(http.StatusConflict, "already enrolled in this class", apperror.ErrConflict)
		} else if !errors.Is(err, apperror.ErrNotFound) {
			return uuid.Nil, err
		}

		if err := s.paymentRepo.Create(ctx, record); err != nil {
			return uuid.Nil, err
		}
		return record.ID, nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{Payment: record, EnrollCount: count}, nil
}

func (s *paymentService) GetEnrollments(ctx context.Context, callerEmail, student string) ([]dto.EnrollmentResponse, error) {
	student = strings.TrimSpace(student)
	if student == "" {
		student = callerEmail
	}
	if student != callerEmail {
		isAdmin, err := access.IsAdmin(ctx, s.userRepo, callerEmail)
		if err != nil {
			return nil, err
		}
		if !isAdmin {
			return nil, apperror.ErrForbidden
		}
	}

	payments, err := s.paymentRepo.FindByPayer(ctx, student)
	if err != nil {
		return nil, err
	}

	res := make([]dto.EnrollmentResponse, 0, len(payments))
	for _, p := range payments {
		item := dto.EnrollmentResponse{Payment: p}
		class, err := s.classRepo.FindByID(ctx, p.ClassID)
		switch {
		case err == nil:
			item.Class = &dto.ClassSummary{
				ID:        class.ID,
				Title:     class.Title,
				OwnerName: class.OwnerName,
				ImageURL:  class.ImageURL,
			}
		case !errors.Is(err, apperror.ErrNotFound):
			return nil, err
		}
		res = append(res, item)
	}
	return res, nil
}
