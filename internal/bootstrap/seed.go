package bootstrap

import (
	"context"
	"strings"

	"anoa.com/edusphere/internal/entity"
	userRepo "anoa.com/edusphere/internal/modules/user/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Class{},
		&entity.Payment{},
		&entity.Assignment{},
		&entity.Submission{},
		&entity.TeachRequest{},
		&entity.Feedback{},
	)
}

// SeedAdmin makes email an admin, creating the user when needed. An empty
// email is a no-op.
func SeedAdmin(ctx context.Context, users userRepo.UserRepository, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil
	}

	if err := users.UpsertRoleByEmail(ctx, email, entity.RoleAdmin); err != nil {
		return err
	}

	zap.L().Info("admin user seeded", zap.String("email", email))
	return nil
}
