package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	TypeTeachRequest = "teach_request"
)

type Notification struct {
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	RefID     string    `json:"ref_id,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Channel is the redis pub/sub channel a user's websocket listens on.
func Channel(email string) string {
	return fmt.Sprintf("user_notifications:%s", email)
}

type NotificationService interface {
	Notify(ctx context.Context, email string, notification Notification) error
}

type notificationService struct {
	redisClient *redis.Client
	logger      *zap.Logger
}

// NewNotificationService publishes through redis. With a nil client
// notifications are dropped.
func NewNotificationService(redisClient *redis.Client, logger *zap.Logger) NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &notificationService{
		redisClient: redisClient,
		logger:      logger,
	}
}

func (s *notificationService) Notify(ctx context.Context, email string, notification Notification) error {
	if s.redisClient == nil {
		return nil
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	receivers, err := s.redisClient.Publish(ctx, Channel(email), payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	s.logger.Debug("notification published",
		zap.String("email", email),
		zap.String("type", notification.Type),
		zap.Int64("receivers", receivers),
	)
	return nil
}
